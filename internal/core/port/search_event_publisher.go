package port

import (
	"avacasa/internal/core/domain"
	"context"
)

type SearchEventPublisherPort interface {
	PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error
}
