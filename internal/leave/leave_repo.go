package leave

import (
	"context"
	"time"

	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error)
	List(ctx context.Context, filter scope.Filter, status string) ([]LeaveRow, error)
	Stats(ctx context.Context, filter scope.Filter) (Stats, error)
	FindForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRow, error)
	Decide(ctx context.Context, id uuid.UUID, status string, approvedBy uuid.UUID, at time.Time) error
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

// List returns scoped requests, optionally narrowed to one status.
func (r *repository) List(ctx context.Context, filter scope.Filter, status string) ([]LeaveRow, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select(`lr.*, e.name AS employee_name, COALESCE(e.position, '') AS position,
			COALESCE(d.name, '') AS department, e.department_id, e.user_id`).
		Joins("JOIN employees e ON e.id = lr.employee_id").
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Scopes(filter.Employees("e"))
	if status != "" {
		q = q.Where("lr.status = ?", status)
	}

	var rows []LeaveRow
	err := q.Order("lr.start_date DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) Stats(ctx context.Context, filter scope.Filter) (Stats, error) {
	var s Stats
	err := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select(`COUNT(*) AS total,
			COUNT(CASE WHEN lr.status = ? THEN 1 END) AS pending,
			COUNT(CASE WHEN lr.status = ? THEN 1 END) AS approved,
			COUNT(CASE WHEN lr.status = ? THEN 1 END) AS rejected`,
			StatusPending, StatusApproved, StatusRejected).
		Joins("JOIN employees e ON e.id = lr.employee_id").
		Scopes(filter.Employees("e")).
		Scan(&s).Error
	return s, err
}

// FindForUpdate reads the request and its employee under a row lock so
// concurrent decisions serialize.
func (r *repository) FindForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRow, error) {
	var row LeaveRow
	res := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select("lr.*, e.name AS employee_name, e.department_id, e.user_id").
		Joins("JOIN employees e ON e.id = lr.employee_id").
		Where("lr.id = ?", id).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) Decide(ctx context.Context, id uuid.UUID, status string, approvedBy uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"approved_by":   approvedBy,
			"approved_date": at,
		}).Error
}
