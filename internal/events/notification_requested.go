package events

import "time"

const (
	NotificationRequestedType = "notification.requested"

	AggregateLeave       = "leave_request"
	AggregatePerformance = "performance_review"
	AggregateDocument    = "document"
)

// NotificationRequestedEvent asks the consumer to store one notification for
// UserID.
type NotificationRequestedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
