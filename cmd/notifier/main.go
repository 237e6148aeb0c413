package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	contentrepo "hms/internal/content/repository"
	contentservice "hms/internal/content/service"
	contentvalidator "hms/internal/content/validator"
	"hms/internal/notifications"
	notificationsrepo "hms/internal/notifications/repository"
	notificationsservice "hms/internal/notifications/service"
	"hms/pkg/config"
	"hms/pkg/kafka"
	kafka_config "hms/pkg/kafka/config"
	kafka_middleware "hms/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	cfg.Log.Info("Starting reservation notifier", "topic", cfg.ReservationTopic, "group_id", cfg.NotifierGroupID)

	handler := notificationsservice.NewEventHandler(initEmailService(cfg), cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.Log, cfg.ReservationTopic, cfg.NotifierGroupID, cfg.ReservationDLQTopic, handler.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	var metrics *kafka_middleware.Metrics
	if kafkaCfg.EnableMiddleware {
		metrics = kafka_middleware.NewMetrics()
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Kafka consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutting down reservation notifier")
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	if metrics != nil {
		metrics.LogSummary(cfg.Log)
	}
}

func initEmailService(cfg *config.Config) notificationsservice.EmailService {
	contacts := contentservice.NewContentService(
		contentrepo.NewMongoContentRepository(cfg),
		contentvalidator.NewContentValidator(cfg.Log),
		cfg,
	)

	return notificationsservice.NewEmailService(
		notifications.NewMailer(cfg),
		notificationsrepo.NewMongoEmailLogRepository(cfg),
		contacts,
		cfg,
	)
}
