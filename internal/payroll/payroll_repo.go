package payroll

import (
	"context"
	"time"

	"go-hrms/internal/identity"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const rowSelect = `p.*, e.name, COALESCE(e.position, '') AS position,
	COALESCE(d.name, '') AS department, e.department_id`

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByMonth(ctx context.Context, month time.Time, filter scope.Filter) ([]PayrollRow, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PayrollRow, error)
	FindRow(ctx context.Context, id uuid.UUID) (*PayrollRow, error)
	SalarySources(ctx context.Context) ([]SalarySource, error)
	CreateMissing(ctx context.Context, rows []Payroll) (int64, error)
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

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("payroll AS p").
		Select(rowSelect).
		Joins("JOIN employees e ON e.id = p.employee_id").
		Joins("LEFT JOIN departments d ON d.id = e.department_id")
}

func (r *repository) ListByMonth(ctx context.Context, month time.Time, filter scope.Filter) ([]PayrollRow, error) {
	var rows []PayrollRow
	err := r.joined(ctx).
		Where("p.month_year = ?", month.Format(time.DateOnly)).
		Scopes(filter.Employees("e")).
		Order("d.name ASC, e.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PayrollRow, error) {
	var rows []PayrollRow
	err := r.joined(ctx).
		Where("p.employee_id = ?", employeeID).
		Order("p.month_year DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindRow(ctx context.Context, id uuid.UUID) (*PayrollRow, error) {
	var row PayrollRow
	res := r.joined(ctx).Where("p.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// SalarySources lists every staff employee with the salary on record.
func (r *repository) SalarySources(ctx context.Context) ([]SalarySource, error) {
	var rows []SalarySource
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id AS employee_id, salary").
		Where("role IN ?", []identity.Role{identity.RoleEmployee, identity.RoleHR}).
		Order("name ASC").
		Scan(&rows).Error
	return rows, err
}

// CreateMissing inserts rows, skipping any (employee_id, month_year) that
// already exists, and reports how many were inserted.
func (r *repository) CreateMissing(ctx context.Context, rows []Payroll) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "month_year"}},
			DoNothing: true,
		}).
		CreateInBatches(rows, 200)
	return res.RowsAffected, res.Error
}
