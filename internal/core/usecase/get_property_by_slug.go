package usecase

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"errors"
)

type GetPropertyBySlugUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyBySlugUseCase(storage port.PropertyStoragePort) *GetPropertyBySlugUseCase {
	return &GetPropertyBySlugUseCase{storage: storage}
}

func (uc *GetPropertyBySlugUseCase) Execute(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetPropertyBySlug",
		"slug":     slug,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.storage.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			ucLogger.Info("Property not found", nil)
		} else {
			ucLogger.Error("Storage returned an error", err, nil)
		}
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)

	return result, nil
}
