package usecases_port

import (
	"avacasa/internal/core/domain"
	"context"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.FindPropertiesFilters) (*domain.FindPropertiesResult, error)
}
