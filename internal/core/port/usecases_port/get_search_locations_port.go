package usecases_port

import (
	"avacasa/internal/core/domain"
	"context"
)

type GetSearchLocationsUseCase interface {
	Execute(ctx context.Context) ([]domain.SearchLocation, error)
}
