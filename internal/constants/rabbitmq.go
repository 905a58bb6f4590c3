package constants

const (
	AnalyticsExchangeName = "avacasa.analytics"
	AnalyticsExchangeType = "topic"

	SearchPerformedRoutingKey = "search.performed"

	SearchPerformedEventType    = "SearchPerformedEvent"
	SearchPerformedEventVersion = "1.0.0"
)
