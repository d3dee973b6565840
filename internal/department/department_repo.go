package department

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]DepartmentWithCount, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	FindByName(ctx context.Context, name string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEmployees(ctx context.Context, id uuid.UUID) (int64, error)
	CountAllEmployees(ctx context.Context) (int64, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]DepartmentWithCount, error) {
	var rows []DepartmentWithCount
	err := r.db.WithContext(ctx).
		Table("departments AS d").
		Select(`d.*, COALESCE(m.name, '') AS manager_name,
			(SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id) AS employee_count`).
		Joins("LEFT JOIN employees m ON m.id = d.manager_id").
		Order("d.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "name = ?", name).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) CountEmployees(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("department_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *repository) CountAllEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("employees").Count(&n).Error
	return n, err
}
