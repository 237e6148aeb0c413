package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hms/pkg/client"
	"hms/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int
	MaxUploadSize  int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
	FrontendURL  string

	NotifierMode        string
	NotificationTimeout time.Duration
	ReservationTopic    string
	ReservationDLQTopic string
	NotifierGroupID     string

	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	StoragePublicURL string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	BookingCodePrefix     string
	DefaultBasePrice      float64
	DefaultAllotment      int
	DefaultWhatsAppNumber string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads .env (when present) and the process environment, validates the
// result and exits the process if it is unusable.
func Load(serviceName string) *Config {
	dotenvErr := godotenv.Load()

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
		Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.NewClient()

	if dotenvErr != nil && !errors.Is(dotenvErr, fs.ErrNotExist) {
		cfg.Log.Warn("Failed to read .env file", "error", dotenvErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() *Config {
	smtpUser := getEnvStr(EnvSMTPUser, "")

	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		MaxUploadSize:  getEnvNum(EnvMaxUploadSize, DefaultMaxUploadSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		JWTSecret:   getEnvStr(EnvJWTSecret, DefaultJWTSecret),
		TokenTTL:    getEnvDuration(EnvTokenTTL, DefaultTokenTTL),
		CORSOrigins: getEnvList(EnvCORSOrigins, DefaultCORSOrigins),

		SMTPHost:     getEnvStr(EnvSMTPHost, ""),
		SMTPPort:     getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUser:     smtpUser,
		SMTPPassword: getEnvStr(EnvSMTPPassword, ""),
		SenderEmail:  getEnvStr(EnvSenderEmail, smtpUser),
		FrontendURL:  strings.TrimSuffix(getEnvStr(EnvFrontendURL, DefaultFrontendURL), "/"),

		NotifierMode:        getEnvStr(EnvNotifierMode, DefaultNotifierMode),
		NotificationTimeout: getEnvDuration(EnvNotificationTimeout, DefaultNotificationTimeout),
		ReservationTopic:    getEnvStr(EnvReservationTopic, DefaultReservationTopic),
		ReservationDLQTopic: getEnvStr(EnvReservationDLQTopic, DefaultReservationDLQTopic),
		NotifierGroupID:     getEnvStr(EnvNotifierGroupID, DefaultNotifierGroupID),

		StorageEndpoint:  getEnvStr(EnvStorageEndpoint, ""),
		StorageRegion:    getEnvStr(EnvStorageRegion, DefaultStorageRegion),
		StorageBucket:    getEnvStr(EnvStorageBucket, ""),
		StorageAccessKey: getEnvStr(EnvStorageAccessKey, ""),
		StorageSecretKey: getEnvStr(EnvStorageSecretKey, ""),
		StoragePublicURL: strings.TrimSuffix(getEnvStr(EnvStoragePublicURL, ""), "/"),

		GeminiAPIKey:  getEnvStr(EnvGeminiAPIKey, ""),
		GeminiModel:   getEnvStr(EnvGeminiModel, DefaultGeminiModel),
		GeminiBaseURL: getEnvStr(EnvGeminiBaseURL, DefaultGeminiBaseURL),

		BookingCodePrefix:     getEnvStr(EnvBookingCodePrefix, DefaultBookingCodePrefix),
		DefaultBasePrice:      getEnvFloat(EnvDefaultBasePrice, DefaultBasePrice),
		DefaultAllotment:      getEnvNum(EnvDefaultAllotment, DefaultAllotment),
		DefaultWhatsAppNumber: getEnvStr(EnvDefaultWhatsAppNumber, DefaultWhatsAppNumber),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SMTPEnabled reports whether outbound mail can be delivered over SMTP.
func (cfg *Config) SMTPEnabled() bool {
	return cfg.SMTPHost != "" && cfg.SMTPUser != "" && cfg.SMTPPassword != ""
}

// StorageEnabled reports whether media uploads have an object store to go to.
func (cfg *Config) StorageEnabled() bool {
	return cfg.StorageBucket != "" && cfg.StorageAccessKey != "" && cfg.StorageSecretKey != ""
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	positiveDurations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"TokenTTL", cfg.TokenTTL},
		{"NotificationTimeout", cfg.NotificationTimeout},
	}
	for _, d := range positiveDurations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.MaxUploadSize < cfg.MaxRequestSize {
		errors = append(errors, fmt.Sprintf("MaxUploadSize (%d) must be >= MaxRequestSize (%d)", cfg.MaxUploadSize, cfg.MaxRequestSize))
	}

	if len(cfg.JWTSecret) < 16 {
		errors = append(errors, "JWTSecret must be at least 16 characters long")
	}
	if len(cfg.CORSOrigins) == 0 {
		errors = append(errors, "CORSOrigins must list at least one origin")
	}

	if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
		errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
	}
	if _, err := url.ParseRequestURI(cfg.FrontendURL); err != nil {
		errors = append(errors, fmt.Sprintf("FrontendURL must be an absolute URL, got: %s", cfg.FrontendURL))
	}

	if cfg.NotifierMode != NotifierModeAsync && cfg.NotifierMode != NotifierModeKafka {
		errors = append(errors, fmt.Sprintf("NotifierMode must be one of [%s, %s], got: %s", NotifierModeAsync, NotifierModeKafka, cfg.NotifierMode))
	}
	if cfg.NotifierMode == NotifierModeKafka && cfg.ReservationTopic == "" {
		errors = append(errors, "ReservationTopic cannot be empty when NotifierMode is kafka")
	}

	if cfg.BookingCodePrefix == "" {
		errors = append(errors, "BookingCodePrefix cannot be empty")
	}
	if cfg.DefaultBasePrice <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultBasePrice must be positive, got: %v", cfg.DefaultBasePrice))
	}
	if cfg.DefaultAllotment < 1 {
		errors = append(errors, fmt.Sprintf("DefaultAllotment must be at least 1, got: %d", cfg.DefaultAllotment))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	if cfg.JWTSecret == DefaultJWTSecret {
		cfg.Log.Warn("JWT_SECRET is not set, using the development secret")
	}

	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"max_upload_size", cfg.MaxUploadSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"token_ttl", cfg.TokenTTL,
		"cors_origins", cfg.CORSOrigins,
		"smtp_enabled", cfg.SMTPEnabled(),
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
		"frontend_url", cfg.FrontendURL,
		"notifier_mode", cfg.NotifierMode,
		"reservation_topic", cfg.ReservationTopic,
		"storage_enabled", cfg.StorageEnabled(),
		"storage_bucket", cfg.StorageBucket,
		"captioning_enabled", cfg.GeminiAPIKey != "",
		"booking_code_prefix", cfg.BookingCodePrefix,
		"default_base_price", cfg.DefaultBasePrice,
		"default_allotment", cfg.DefaultAllotment,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
