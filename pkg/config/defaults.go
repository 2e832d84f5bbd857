package config

import "time"

const (
	DefaultMongoURI         = "mongodb://localhost:27017"
	DefaultMongoDatabase    = "turnero"
	DefaultMongoConnTimeout = 10 * time.Second

	DefaultPort = "8080"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Hours a tenant gets before configuring anything. The Saturday close
	// is a default weekday override; explicit tenant configuration for
	// Saturday takes precedence over it.
	DefaultOpen        = "09:00"
	DefaultClose       = "20:00"
	DefaultIntervalMin = 30
	DefaultSatClose    = "18:00"

	// How often the archival sweep wakes up. The sweep itself only moves
	// bookings dated strictly before today, so running more often than
	// daily is harmless.
	DefaultSweepInterval = 24 * time.Hour

	DefaultLogLevel = "info"

	DefaultPaginationLimit = 20
	MaxPaginationLimit     = 100
)

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		return DefaultPaginationLimit
	}
	if limit > MaxPaginationLimit {
		return MaxPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	return offset
}
