package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is metadata only; the bytes live in file storage under FilePath.
type Document struct {
	ID         uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:char(36);not null;index:idx_documents_user"`
	Title      string    `gorm:"column:title;type:varchar(200);not null"`
	Type       string    `gorm:"column:type;type:varchar(50)"`
	FilePath   string    `gorm:"column:file_path;type:varchar(255);not null"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentRow struct {
	Document
	UserName string
	UserRole string
}

type UserOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}
