package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-otpay/internal/events"
	"go-otpay/internal/messaging/kafka/consumer"
	"go-otpay/internal/notification"
	"go-otpay/internal/shared/clock"
	"go-otpay/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	clk := clock.New(os.Getenv("PAYROLL_TIMEZONE"))
	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, clk)

	reviewRequiredReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.OTReviewRequiredTopic,
		GroupID:        "go-otpay-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reviewRequiredReader.Close()

	reviewedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.OTReviewedTopic,
		GroupID:        "go-otpay-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reviewedReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeOTReviewRequired(ctx, reviewRequiredReader, notificationService, logger)
	go consumer.ConsumeOTReviewed(ctx, reviewedReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
