package user

import (
	"time"

	"go-hrms/internal/identity"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID     `gorm:"column:id;type:char(36);primaryKey"`
	Name         string        `gorm:"column:name;type:varchar(100);not null"`
	Email        string        `gorm:"column:email;type:varchar(150);not null;uniqueIndex:idx_users_email"`
	PasswordHash string        `gorm:"column:password;type:varchar(255);not null"`
	Role         identity.Role `gorm:"column:role;type:varchar(20);not null;default:employee"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
