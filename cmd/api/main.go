package main

import (
	"context"
	"time"

	analyticshandler "hms/internal/analytics/handler"
	analyticsrepo "hms/internal/analytics/repository"
	analyticsservice "hms/internal/analytics/service"
	audithandler "hms/internal/audit/handler"
	auditrepo "hms/internal/audit/repository"
	auditservice "hms/internal/audit/service"
	"hms/internal/auth"
	authhandler "hms/internal/auth/handler"
	authrepo "hms/internal/auth/repository"
	authservice "hms/internal/auth/service"
	authvalidator "hms/internal/auth/validator"
	contenthandler "hms/internal/content/handler"
	contentrepo "hms/internal/content/repository"
	contentservice "hms/internal/content/service"
	contentvalidator "hms/internal/content/validator"
	dashboardhandler "hms/internal/dashboard/handler"
	dashboardrepo "hms/internal/dashboard/repository"
	dashboardservice "hms/internal/dashboard/service"
	inventoryhandler "hms/internal/inventory/handler"
	inventoryrepo "hms/internal/inventory/repository"
	inventoryservice "hms/internal/inventory/service"
	inventoryvalidator "hms/internal/inventory/validator"
	"hms/internal/media"
	mediahandler "hms/internal/media/handler"
	mediarepo "hms/internal/media/repository"
	mediaservice "hms/internal/media/service"
	"hms/internal/notifications"
	notificationshandler "hms/internal/notifications/handler"
	notificationsrepo "hms/internal/notifications/repository"
	notificationsservice "hms/internal/notifications/service"
	pricinghandler "hms/internal/pricing/handler"
	pricingservice "hms/internal/pricing/service"
	promoshandler "hms/internal/promos/handler"
	promosrepo "hms/internal/promos/repository"
	promosservice "hms/internal/promos/service"
	promosvalidator "hms/internal/promos/validator"
	rateplanshandler "hms/internal/rateplans/handler"
	rateplansrepo "hms/internal/rateplans/repository"
	rateplansservice "hms/internal/rateplans/service"
	rateplansvalidator "hms/internal/rateplans/validator"
	reservationshandler "hms/internal/reservations/handler"
	reservationsrepo "hms/internal/reservations/repository"
	reservationsservice "hms/internal/reservations/service"
	reservationsvalidator "hms/internal/reservations/validator"
	reviewshandler "hms/internal/reviews/handler"
	reviewsrepo "hms/internal/reviews/repository"
	reviewsservice "hms/internal/reviews/service"
	reviewsvalidator "hms/internal/reviews/validator"
	roomshandler "hms/internal/rooms/handler"
	roomsrepo "hms/internal/rooms/repository"
	roomsservice "hms/internal/rooms/service"
	roomsvalidator "hms/internal/rooms/validator"
	"hms/pkg/app"
	"hms/pkg/config"
	"hms/pkg/contracts"
	"hms/pkg/kafka"
	kafka_config "hms/pkg/kafka/config"
	kafka_middleware "hms/pkg/kafka/middleware"
	"hms/pkg/middleware"
)

const (
	ServiceName = "api"
	eventSource = "hms-api"
)

// waiter is a notifier that can be drained on shutdown.
type waiter interface {
	reservationsservice.Notifier
	Wait(timeout time.Duration) bool
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting hotel API")

	serverApp := app.NewApplication(cfg)
	handlers := initHandlers(cfg, serverApp)
	serverApp.SetApp(cfg.Client, handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, serverApp *app.Application) []contracts.Handler {
	ctx := context.Background()

	roomRepo := roomsrepo.NewMongoRoomTypeRepository(cfg)
	inventoryRepo := inventoryrepo.NewMongoInventoryRepository(cfg)
	planRepo := rateplansrepo.NewMongoRatePlanRepository(cfg)
	promoRepo := promosrepo.NewMongoPromoCodeRepository(cfg)
	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg)
	reviewRepo := reviewsrepo.NewMongoReviewRepository(cfg)
	contentRepo := contentrepo.NewMongoContentRepository(cfg)

	auditService := auditservice.NewAuditService(auditrepo.NewMongoAuditLogRepository(cfg), cfg)

	contentService := contentservice.NewContentService(contentRepo, contentvalidator.NewContentValidator(cfg.Log), cfg)
	emailService := notificationsservice.NewEmailService(
		notifications.NewMailer(cfg),
		notificationsrepo.NewMongoEmailLogRepository(cfg),
		contentService,
		cfg,
	)

	userRepo := authrepo.NewMongoUserRepository(cfg)
	userValidator := authvalidator.NewUserValidator(cfg.Log)
	authService := authservice.NewAuthService(
		userRepo,
		authrepo.NewMongoPasswordResetRepository(cfg),
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		emailService,
		userValidator,
		cfg,
	)
	guard := middleware.NewGuard(authService, cfg.Log)

	notifier, closeNotifier := initNotifier(cfg, emailService)
	serverApp.OnShutdown(func(ctx context.Context) {
		timeout := cfg.NotificationTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if !notifier.Wait(timeout) {
			cfg.Log.Warn("Shutdown timed out waiting for reservation notifications")
		}
		closeNotifier()
	})

	reservationService := reservationsservice.NewReservationService(reservationsservice.Dependencies{
		Repo:          reservationRepo,
		Rooms:         roomRepo,
		Calendar:      inventoryRepo,
		Plans:         planRepo,
		Promos:        promoRepo,
		Notifier:      notifier,
		Confirmations: emailService,
		Validator:     reservationsvalidator.NewReservationValidator(cfg.Log),
	}, cfg)

	store, err := media.NewObjectStore(ctx, cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize object storage", "error", err)
	}
	mediaService := mediaservice.NewMediaService(
		store,
		media.NewCaptioner(cfg),
		mediarepo.NewMongoGalleryRepository(cfg),
		roomRepo,
		cfg,
	)

	dashboardService := dashboardservice.NewDashboardService(
		dashboardrepo.NewMongoStatsRepository(cfg),
		roomRepo,
		inventoryRepo,
		reviewRepo,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName, "notifier_mode", cfg.NotifierMode)

	return []contracts.Handler{
		roomshandler.NewRoomTypeHandler(
			roomsservice.NewRoomTypeService(roomRepo, roomsvalidator.NewRoomTypeValidator(cfg.Log), cfg),
			guard, auditService, cfg.Log,
		),
		inventoryhandler.NewInventoryHandler(
			inventoryservice.NewInventoryService(inventoryRepo, roomRepo, inventoryvalidator.NewInventoryValidator(cfg.Log), cfg),
			guard, auditService, cfg.Log,
		),
		rateplanshandler.NewRatePlanHandler(
			rateplansservice.NewRatePlanService(planRepo, roomRepo, rateplansvalidator.NewRatePlanValidator(cfg.Log), cfg),
			guard, auditService, cfg.Log,
		),
		pricinghandler.NewAvailabilityHandler(
			pricingservice.NewAvailabilityService(roomRepo, inventoryRepo, planRepo, cfg),
			cfg.Log,
		),
		promoshandler.NewPromoCodeHandler(
			promosservice.NewPromoCodeService(promoRepo, promosvalidator.NewPromoCodeValidator(cfg.Log), cfg),
			guard, auditService, cfg.Log,
		),
		reservationshandler.NewReservationHandler(reservationService, guard, auditService, cfg.Log),
		authhandler.NewAuthHandler(authService, guard, auditService, cfg.Log),
		authhandler.NewUserHandler(authservice.NewUserService(userRepo, userValidator, cfg), guard, auditService, cfg.Log),
		reviewshandler.NewReviewHandler(
			reviewsservice.NewReviewService(reviewRepo, reviewsvalidator.NewReviewValidator(cfg.Log), cfg),
			guard, auditService, cfg.Log,
		),
		contenthandler.NewContentHandler(contentService, guard, auditService, cfg.Log),
		audithandler.NewAuditLogHandler(auditService, guard, cfg.Log),
		notificationshandler.NewEmailLogHandler(emailService, guard, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardService, guard, cfg.Log),
		analyticshandler.NewAnalyticsHandler(
			analyticsservice.NewAnalyticsService(analyticsrepo.NewMongoStatsRepository(cfg), cfg),
			guard, cfg.Log,
		),
		mediahandler.NewMediaHandler(mediaService, guard, auditService, cfg.Log, cfg.MaxUploadSize),
	}
}

// initNotifier sends confirmations in-process, or publishes them for
// cmd/notifier in kafka mode. A broker that cannot be configured at startup
// degrades to in-process delivery. The returned func runs after Wait.
func initNotifier(cfg *config.Config, emails notificationsservice.EmailService) (waiter, func()) {
	async := notificationsservice.NewAsyncNotifier(emails, cfg)
	if cfg.NotifierMode != config.NotifierModeKafka {
		return async, func() {}
	}

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Error("Invalid Kafka configuration, sending reservation emails in-process", "error", err)
		return async, func() {}
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.ReservationTopic, cfg.ReservationDLQTopic)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, sending reservation emails in-process", "error", err)
		return async, func() {}
	}

	var metrics *kafka_middleware.Metrics
	if kafkaCfg.EnableMiddleware {
		metrics = kafka_middleware.NewMetrics()
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.ProducerMiddleware())
	}

	notifier := notificationsservice.NewKafkaNotifier(producer, async, eventSource, cfg)
	return notifier, func() {
		// Fallback sends started by the kafka notifier run on the async one.
		if !async.Wait(cfg.NotificationTimeout) {
			cfg.Log.Warn("Shutdown timed out waiting for fallback emails")
		}
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
		if metrics != nil {
			metrics.LogSummary(cfg.Log)
		}
	}
}
