package notification

import "github.com/google/uuid"

type NotificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// Request is a notification queued by a state change elsewhere.
type Request struct {
	UserID        uuid.UUID
	Message       string
	AggregateType string
	AggregateID   string
}
