package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "actman"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultActivitiesAPIBaseURL = "http://localhost:8081"
	DefaultActivitiesAPITimeout = 10 * time.Second
	DefaultRegimeCacheSize      = 128

	// Band boundaries: a session starting before AmBandEnd is AM, before
	// PmBandEnd is PM, anything later is ED.
	DefaultAmBandEnd = "12:00"
	DefaultPmBandEnd = "16:00"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultJourneyTTL     = 24 * time.Hour

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
