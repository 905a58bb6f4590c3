package usecases_port

import (
	"avacasa/internal/core/domain"
	"context"
)

type GetPropertyBySlugUseCase interface {
	Execute(ctx context.Context, slug string) (*domain.PropertyDetails, error)
}
