package usecase

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"time"

	"github.com/google/uuid"
)

type FindPropertiesUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.SearchEventPublisherPort
	now       func() time.Time
}

// NewFindPropertiesUseCase. publisher может быть nil - тогда события не отправляются
func NewFindPropertiesUseCase(storage port.PropertyStoragePort, publisher port.SearchEventPublisherPort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{storage: storage, publisher: publisher, now: time.Now}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filters domain.FindPropertiesFilters) (*domain.FindPropertiesResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "FindProperties",
		"search":         filters.Search,
		"page":           filters.Page,
		"limit":          filters.Limit,
		"published_only": filters.PublishedOnly,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.storage.FindWithFilters(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Properties),
	})

	// Аналитика только для публичного поиска, ошибка публикации не ломает ответ
	if uc.publisher != nil && filters.PublishedOnly {
		event := uc.buildEvent(ctx, filters, result)
		if err := uc.publisher.PublishSearchPerformed(ctx, event); err != nil {
			ucLogger.Warn("Failed to publish search event", port.Fields{
				"event_id": event.EventID,
				"error":    err.Error(),
			})
		}
	}

	return result, nil
}

func (uc *FindPropertiesUseCase) buildEvent(ctx context.Context, filters domain.FindPropertiesFilters, result *domain.FindPropertiesResult) domain.SearchPerformedEvent {
	traceID := contextkeys.TraceIDFromContext(ctx)
	return domain.SearchPerformedEvent{
		EventID:      uuid.NewString(),
		TraceID:      traceID,
		OccurredAt:   uc.now().UTC(),
		Search:       filters.Search,
		PropertyType: filters.PropertyType,
		LocationKeys: filters.LocationKeys,
		MinBedrooms:  filters.MinBedrooms,
		MinPrice:     filters.MinPrice,
		MaxPrice:     filters.MaxPrice,
		HasBounds:    filters.Bounds != nil,
		FeaturedOnly: filters.FeaturedOnly,
		Page:         filters.Page,
		ResultCount:  len(result.Properties),
		TotalCount:   result.TotalCount,
	}
}
