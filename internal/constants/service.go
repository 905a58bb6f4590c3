package constants

const (
	APIServiceName   = "avacasa-api"
	SearchClientName = "avacasa-search"
	MetricsNamespace = "avacasa"
)
