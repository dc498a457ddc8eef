package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "airlock"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultListingsBaseURL = "http://localhost:4010"
	DefaultBookingsBaseURL = "http://localhost:4011"
	DefaultPaymentsBaseURL = "http://localhost:4012"
	DefaultReviewsBaseURL  = "http://localhost:4013"
	DefaultAccountsBaseURL = "http://localhost:4014"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Advisory lock lifetime; long enough to cover the availability check
	// plus the insert, short enough to self-heal after a crash.
	DefaultSlotLockTTL = 10 * time.Second

	DefaultPaginationLimit = 50

	// Upper bound on bookings fetched for one overlap check. A single
	// listing cannot plausibly hold more concurrent future stays.
	MaxOverlapFetch = 50

	DefaultFeaturedListings = 3
)
