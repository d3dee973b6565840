package notification

import (
	"context"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"gorm.io/gorm"
)

// Outbox queues notifications inside the caller's transaction; the outbox
// worker publishes them later.
//
//go:generate mockgen -source=notification_outbox.go -destination=mock/notification_outbox_mock.go -package=mock
type Outbox interface {
	Enqueue(ctx context.Context, tx *gorm.DB, req Request) error
}

type outbox struct {
	repo  kafka.OutboxRepository
	topic string
	now   func() time.Time
}

func NewOutbox(repo kafka.OutboxRepository, topic string) Outbox {
	return &outbox{repo: repo, topic: topic, now: time.Now}
}

func (o *outbox) Enqueue(ctx context.Context, tx *gorm.DB, req Request) error {
	event, err := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		req.AggregateType,
		req.AggregateID,
		events.NotificationRequestedType,
		o.topic,
		events.NotificationRequestedEvent{
			EventType:  events.NotificationRequestedType,
			UserID:     req.UserID.String(),
			Message:    req.Message,
			OccurredAt: o.now().UTC(),
		},
	)
	if err != nil {
		return err
	}
	return o.repo.WithTx(tx).Create(ctx, event)
}
