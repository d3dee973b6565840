package kafka_test

import (
	"testing"
	"time"

	"go-hrms/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev, err := kafka.NewEvent("req-1", "leave_request", "l-1", "notification.requested", "hrms.notifications.v1",
		map[string]string{"message": "hi"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"message":"hi"}`, string(ev.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	base := kafka.OutboxEvent{ID: uuid.New(), Topic: "t", Payload: []byte("x"), Status: kafka.OutboxStatusPending}

	missingTopic := base
	missingTopic.Topic = ""
	assert.EqualError(t, kafka.ValidateOutboxEvent(missingTopic), "outbox topic is required")

	badStatus := base
	badStatus.Status = "queued"
	assert.EqualError(t, kafka.ValidateOutboxEvent(badStatus), "invalid outbox status: queued")
}

func TestNextRetryAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(15*time.Second), kafka.NextRetryAt(0, now))
	assert.Equal(t, now.Add(45*time.Second), kafka.NextRetryAt(2, now))
	assert.Equal(t, now.Add(150*time.Second), kafka.NextRetryAt(30, now))
}
