package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hms"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024  // 1MB
	DefaultMaxUploadSize  = 50 * 1024 * 1024 // 50MB, room videos

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultJWTSecret   = "hms-development-secret-change-me"
	DefaultTokenTTL    = 24 * time.Hour
	DefaultCORSOrigins = "http://localhost:3000"

	DefaultSMTPPort    = 465
	DefaultFrontendURL = "http://localhost:3000"

	NotifierModeAsync          = "async"
	NotifierModeKafka          = "kafka"
	DefaultNotifierMode        = NotifierModeAsync
	DefaultNotificationTimeout = 30 * time.Second
	DefaultReservationTopic    = "hms.reservations"
	DefaultReservationDLQTopic = "hms.reservations.dlq"
	DefaultNotifierGroupID     = "hms-notifier"

	DefaultStorageRegion = "auto"

	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	DefaultBookingCodePrefix     = "SGH"
	DefaultBasePrice             = 500000.0
	DefaultAllotment             = 5
	DefaultWhatsAppNumber        = "6281130700206"
	DefaultPhoneRegion           = "ID"
	DefaultReservationQueryLimit = 10
)
