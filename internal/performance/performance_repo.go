package performance

import (
	"context"

	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=performance_repo.go -destination=mock/performance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *PerformanceReview) error
	List(ctx context.Context, filter scope.Filter) ([]ReviewRow, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]ReviewRow, error)
	EmployeeOptions(ctx context.Context, filter scope.Filter) ([]EmployeeOption, error)
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

func (r *repository) Create(ctx context.Context, review *PerformanceReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("performance_reviews AS pr").
		Select("pr.*, e.name AS employee_name, COALESCE(d.name, '') AS department_name, u.name AS reviewer_name").
		Joins("JOIN employees e ON e.id = pr.employee_id").
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Joins("JOIN users u ON u.id = pr.reviewer_id")
}

func (r *repository) List(ctx context.Context, filter scope.Filter) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := r.joined(ctx).
		Scopes(filter.Employees("e")).
		Order("pr.review_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := r.joined(ctx).
		Where("pr.employee_id = ?", employeeID).
		Order("pr.review_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) EmployeeOptions(ctx context.Context, filter scope.Filter) ([]EmployeeOption, error) {
	var rows []EmployeeOption
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.id, e.name").
		Where("e.role = ?", "employee").
		Scopes(filter.Employees("e")).
		Order("e.name ASC").
		Scan(&rows).Error
	return rows, err
}
