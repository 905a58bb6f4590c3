package port

import (
	"context"
	"net/url"

	"avacasa/internal/core/domain"
)

// ListingAPIPort - клиент сервиса выдачи, которым пользуется страница поиска.
// query уже содержит параметры в нужном порядке.
type ListingAPIPort interface {
	FetchProperties(ctx context.Context, query string) (*domain.ListingPage, error)
	FetchLocations(ctx context.Context) ([]domain.SearchLocation, error)
}

// HistoryReplacer заменяет текущий query string адресной строки (replace, не push)
type HistoryReplacer interface {
	ReplaceQuery(values url.Values, encoded string)
}
