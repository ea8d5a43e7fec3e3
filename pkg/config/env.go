package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvActivitiesAPIBaseURL = "ACTIVITIES_API_BASE_URL"
	EnvActivitiesAPITimeout = "ACTIVITIES_API_TIMEOUT"
	EnvRegimeCacheSize      = "REGIME_CACHE_SIZE"

	EnvAmBandEnd = "AM_BAND_END"
	EnvPmBandEnd = "PM_BAND_END"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvJourneyTTL     = "JOURNEY_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
