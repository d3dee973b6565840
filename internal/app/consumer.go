package app

import (
	"context"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/notification"
	"go-hrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns notification events into Notification rows until a
// shutdown signal.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	notificationService := notification.NewService(gormDB, notification.NewRepository(gormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          cfg.Kafka.NotificationTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeNotifications(ctx, reader, notificationService, logger)
	}()

	sig := bootstrap.WaitForSignal()
	log.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
	<-done

	return nil
}
