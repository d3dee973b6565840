package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:char(36);not null;index:idx_notifications_user_read,priority:1"`
	Message   string    `gorm:"column:message;type:text;not null"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
