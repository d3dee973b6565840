package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is append-only; rows are never updated or deleted.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index:idx_audit_logs_user"`
	Action    string    `gorm:"type:varchar(100);not null"`
	Details   string    `gorm:"type:text"`
	IPAddress string    `gorm:"type:varchar(45)"`
	Timestamp time.Time `gorm:"not null;index:idx_audit_logs_timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// auditRow is AuditLog joined with the actor's name.
type auditRow struct {
	AuditLog
	UserName string
}
