package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/messaging/kafka"
	kafkamock "go-hrms/internal/messaging/kafka/mock"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failFor map[string]bool
	written []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	ok := kafka.OutboxEvent{ID: uuid.New(), AggregateID: "a-1", EventType: "notification.requested", Topic: "hrms.notifications.v1", Payload: []byte(`{}`)}
	bad := kafka.OutboxEvent{ID: uuid.New(), AggregateID: "a-2", EventType: "notification.requested", Topic: "hrms.notifications.v1", Payload: []byte(`{}`), RetryCount: 2}

	t.Run("sent and failed events are marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"a-2": true}}

		repo.EXPECT().ListPending(ctx, now, batchSize).Return([]kafka.OutboxEvent{ok, bad}, nil)
		repo.EXPECT().MarkSent(ctx, ok.ID, now).Return(nil)
		repo.EXPECT().MarkFailed(ctx, bad, "broker unavailable", now).Return(nil)

		err := processPendingEvents(ctx, repo, writer, zap.NewNop(), now)

		assert.NoError(t, err)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "hrms.notifications.v1", writer.written[0].Topic)
		assert.Equal(t, "notification.requested", string(writer.written[0].Headers[0].Value))
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, now, batchSize).Return(nil, errors.New("db down"))

		err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), now)

		assert.EqualError(t, err, "db down")
	})
}
