package kafka_config

import "time"

const (
	// DefaultKafkaBrokers is empty: event publishing is disabled until an
	// operator points the engine at a cluster.
	DefaultKafkaBrokers = ""

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultBookingEventsTopic = "booking-events"
)
