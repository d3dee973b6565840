package document

import (
	"context"

	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context, filter scope.Filter) ([]DocumentRow, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UserOptions(ctx context.Context) ([]UserOption, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) List(ctx context.Context, filter scope.Filter) ([]DocumentRow, error) {
	var rows []DocumentRow
	err := r.db.WithContext(ctx).
		Table("documents AS d").
		Select("d.*, u.name AS user_name, u.role AS user_role").
		Joins("JOIN users u ON u.id = d.user_id").
		Scopes(filter.Owner("d.user_id")).
		Order("d.uploaded_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id).Error
}

func (r *repository) UserOptions(ctx context.Context) ([]UserOption, error) {
	var rows []UserOption
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, name, role").
		Order("name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("users").Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
