package rabbitmq

import (
	"avacasa/internal/constants"
	"avacasa/internal/contextkeys"
	"avacasa/internal/contracts"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type SearchFiltersDTO struct {
	Search       string   `json:"search,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	Locations    []string `json:"locations,omitempty"`
	MinBedrooms  *int     `json:"minBedrooms,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	HasBounds    bool     `json:"hasBounds"`
	FeaturedOnly bool     `json:"featuredOnly"`
}

// SearchPerformedDTO - тело сообщения SearchPerformedEvent/1.0.0
type SearchPerformedDTO struct {
	EventID     string           `json:"eventId"`
	TraceID     string           `json:"traceId,omitempty"`
	OccurredAt  time.Time        `json:"occurredAt"`
	Page        int              `json:"page"`
	ResultCount int              `json:"resultCount"`
	TotalCount  int              `json:"totalCount"`
	Filters     SearchFiltersDTO `json:"filters"`
}

type SearchEventsAdapter struct {
	producer   MessagePublisher
	routingKey string
}

func NewSearchEventsAdapter(producer MessagePublisher, routingKey string) (*SearchEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &SearchEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *SearchEventsAdapter) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SearchEventsAdapter",
		"routing_key": a.routingKey,
		"event_id":    event.EventID,
	})

	body, err := json.Marshal(toSearchPerformedDTO(event))
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	// Невалидное событие не уходит в брокер
	if err := contracts.ValidateEvent(constants.SearchPerformedEventType, constants.SearchPerformedEventVersion, body); err != nil {
		adapterLogger.Error("Search event does not match schema", err, nil)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    event.EventID,
		Type:         constants.SearchPerformedEventType,
		Headers: amqp.Table{
			"x-event-type":    constants.SearchPerformedEventType,
			"x-event-version": constants.SearchPerformedEventVersion,
		},
	}
	if event.TraceID != "" {
		msg.Headers["x-trace-id"] = event.TraceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search event", err, nil)
		return fmt.Errorf("failed to publish search event: %w", err)
	}

	adapterLogger.Debug("Search event published", nil)
	return nil
}

func toSearchPerformedDTO(event domain.SearchPerformedEvent) SearchPerformedDTO {
	dto := SearchPerformedDTO{
		EventID:     event.EventID,
		TraceID:     event.TraceID,
		OccurredAt:  event.OccurredAt,
		Page:        event.Page,
		ResultCount: event.ResultCount,
		TotalCount:  event.TotalCount,
		Filters: SearchFiltersDTO{
			Search:       event.Search,
			Locations:    event.LocationKeys,
			MinBedrooms:  event.MinBedrooms,
			MinPrice:     event.MinPrice,
			MaxPrice:     event.MaxPrice,
			HasBounds:    event.HasBounds,
			FeaturedOnly: event.FeaturedOnly,
		},
	}
	if dto.Page < 1 {
		dto.Page = 1
	}
	if event.PropertyType != nil {
		dto.Filters.PropertyType = string(*event.PropertyType)
	}
	return dto
}
