package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvMaxUploadSize  = "MAX_UPLOAD_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvJWTSecret   = "JWT_SECRET"
	EnvTokenTTL    = "JWT_TTL"
	EnvCORSOrigins = "CORS_ORIGINS"

	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUser     = "SMTP_USER"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvSenderEmail  = "SENDER_EMAIL"
	EnvFrontendURL  = "FRONTEND_URL"

	EnvNotifierMode        = "NOTIFIER_MODE"
	EnvNotificationTimeout = "NOTIFICATION_TIMEOUT"
	EnvReservationTopic    = "RESERVATION_EVENTS_TOPIC"
	EnvReservationDLQTopic = "RESERVATION_EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID     = "NOTIFIER_GROUP_ID"

	EnvStorageEndpoint  = "STORAGE_ENDPOINT"
	EnvStorageRegion    = "STORAGE_REGION"
	EnvStorageBucket    = "STORAGE_BUCKET"
	EnvStorageAccessKey = "STORAGE_ACCESS_KEY_ID"
	EnvStorageSecretKey = "STORAGE_SECRET_ACCESS_KEY"
	EnvStoragePublicURL = "STORAGE_PUBLIC_URL"

	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvGeminiModel   = "GEMINI_MODEL"
	EnvGeminiBaseURL = "GEMINI_BASE_URL"

	EnvBookingCodePrefix     = "BOOKING_CODE_PREFIX"
	EnvDefaultBasePrice      = "DEFAULT_BASE_PRICE"
	EnvDefaultAllotment      = "DEFAULT_ALLOTMENT"
	EnvDefaultWhatsAppNumber = "DEFAULT_WHATSAPP_NUMBER"
)
