package usecase

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
)

type GetSearchLocationsUseCase struct {
	repo port.LocationRepositoryPort
}

func NewGetSearchLocationsUseCase(repo port.LocationRepositoryPort) *GetSearchLocationsUseCase {
	return &GetSearchLocationsUseCase{repo: repo}
}

func (uc *GetSearchLocationsUseCase) Execute(ctx context.Context) ([]domain.SearchLocation, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetSearchLocations",
	})

	locations, err := uc.repo.ListSearchLocations(ctx)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Debug("Locations loaded", port.Fields{"count": len(locations)})
	return locations, nil
}
