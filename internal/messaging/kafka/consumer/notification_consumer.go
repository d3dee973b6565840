package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Deliverer is satisfied by notification.Service.
type Deliverer interface {
	Deliver(ctx context.Context, userID uuid.UUID, message string) error
}

func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	deliverer Deliverer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notifications")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, deliverer, log, msg)
	}
}

// handleMessage commits poison messages so they are not redelivered, and
// leaves a message uncommitted when storing the notification fails.
func handleMessage(ctx context.Context, reader MessageReader, deliverer Deliverer, log *zap.Logger, msg kafkago.Message) {
	var event events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode notification event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	userID, err := uuid.Parse(event.UserID)
	if err != nil || event.Message == "" {
		log.Warn("skipping malformed notification event",
			zap.String("user_id", event.UserID),
			zap.Int64("offset", msg.Offset),
		)
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if err := deliverer.Deliver(ctx, userID, event.Message); err != nil {
		log.Error("store notification failed",
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed", zap.Error(err))
		return
	}

	log.Info("notification stored from event", zap.String("user_id", event.UserID))
}
