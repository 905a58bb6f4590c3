package port

import (
	"avacasa/internal/core/domain"
	"context"
)

type LocationRepositoryPort interface {
	ListSearchLocations(ctx context.Context) ([]domain.SearchLocation, error)
}
