package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	ListLatest(ctx context.Context, limit int) ([]auditRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListLatest(ctx context.Context, limit int) ([]auditRow, error) {
	var rows []auditRow
	err := r.db.WithContext(ctx).
		Table("audit_logs AS a").
		Select("a.*, COALESCE(u.name, '') AS user_name").
		Joins("LEFT JOIN users u ON u.id = a.user_id").
		Order("a.timestamp DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
