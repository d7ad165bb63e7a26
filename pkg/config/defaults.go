package config

import "time"

const (
	DefaultDatabaseURL       = "postgres://localhost:5432/roomsvc?sslmode=disable"
	DefaultDatabaseConnTime  = 10 * time.Second
	DefaultDatabaseMaxConns  = 25
	DefaultDatabaseIdleConns = 5

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultEventsEnabled = false
	DefaultEventsTopic   = "meeting-room-events"
)
