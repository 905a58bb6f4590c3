package port

import (
	"avacasa/internal/core/domain"
	"context"
)

type PropertyStoragePort interface {
	FindWithFilters(ctx context.Context, filters domain.FindPropertiesFilters) (*domain.FindPropertiesResult, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.PropertyDetails, error)
}
