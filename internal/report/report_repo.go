package report

import (
	"context"

	"go-hrms/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	Employees(ctx context.Context, filter scope.Filter) ([]EmployeeRow, error)
	Attendance(ctx context.Context, filter scope.Filter, limit int) ([]AttendanceRow, error)
	Payroll(ctx context.Context, filter scope.Filter, limit int) ([]PayrollRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Employees(ctx context.Context, filter scope.Filter) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.name, e.email, COALESCE(e.position, '') AS position, d.name AS department, e.salary, e.joining_date").
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Scopes(filter.Employees("e")).
		Order("e.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Attendance(ctx context.Context, filter scope.Filter, limit int) ([]AttendanceRow, error) {
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).
		Table("attendance AS a").
		Select("e.name, a.date, a.check_in, a.check_out, a.status").
		Joins("JOIN employees e ON e.id = a.employee_id").
		Scopes(filter.Employees("e")).
		Order("a.date DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Payroll(ctx context.Context, filter scope.Filter, limit int) ([]PayrollRow, error) {
	var rows []PayrollRow
	err := r.db.WithContext(ctx).
		Table("payroll AS p").
		Select("e.name, p.month_year, p.basic_salary, p.net_salary, p.status").
		Joins("JOIN employees e ON e.id = p.employee_id").
		Scopes(filter.Employees("e")).
		Order("p.month_year DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
