package domain

import "time"

// SearchPerformedEvent - аналитическое событие о выполненном публичном поиске
type SearchPerformedEvent struct {
	EventID      string
	TraceID      string
	OccurredAt   time.Time
	Search       string
	PropertyType *PropertyType
	LocationKeys []string
	MinBedrooms  *int
	MinPrice     *float64
	MaxPrice     *float64
	HasBounds    bool
	FeaturedOnly bool
	Page         int
	ResultCount  int
	TotalCount   int
}
