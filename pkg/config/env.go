package config

const (
	EnvMongoURI         = "MONGO_URI"
	EnvMongoDatabase    = "MONGO_DATABASE"
	EnvMongoConnTimeout = "MONGO_CONN_TIMEOUT"

	EnvPort = "PORT"

	EnvRequestTimeout    = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL    = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize    = "MAX_REQUEST_SIZE"
	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultOpen        = "DEFAULT_OPEN"
	EnvDefaultClose       = "DEFAULT_CLOSE"
	EnvDefaultIntervalMin = "DEFAULT_INTERVAL_MIN"
	EnvSaturdayClose      = "SATURDAY_CLOSE"

	EnvSweepInterval = "SWEEP_INTERVAL"

	EnvLogLevel = "LOG_LEVEL"
)
