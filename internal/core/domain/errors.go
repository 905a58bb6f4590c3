package domain

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidBounds    = errors.New("invalid map bounds")
	// ErrListingRequestFailed - сервер ответил success:false
	ErrListingRequestFailed = errors.New("listing request failed")
)
