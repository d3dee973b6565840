package dashboard

import (
	"context"
	"time"

	"go-hrms/internal/identity"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context, role identity.Role, filter scope.Filter) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountAttendance(ctx context.Context, date time.Time, filter scope.Filter) (int64, error)
	CountPendingLeaves(ctx context.Context, filter scope.Filter) (int64, error)
	DepartmentAttendance(ctx context.Context, date time.Time, filter scope.Filter, limit int) ([]AttendanceRow, error)
	RecentAttendance(ctx context.Context, employeeID uuid.UUID, limit int) ([]AttendanceRow, error)
	CountPresent(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context, role identity.Role, filter scope.Filter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Where("e.role = ?", role).
		Scopes(filter.Employees("e")).
		Count(&n).Error
	return n, err
}

func (r *repository) CountDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("departments").Count(&n).Error
	return n, err
}

func (r *repository) CountAttendance(ctx context.Context, date time.Time, filter scope.Filter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("attendance AS a").
		Joins("JOIN employees e ON e.id = a.employee_id").
		Where("a.date = ?", date).
		Scopes(filter.Employees("e")).
		Count(&n).Error
	return n, err
}

func (r *repository) CountPendingLeaves(ctx context.Context, filter scope.Filter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Joins("JOIN employees e ON e.id = lr.employee_id").
		Where("lr.status = ?", "pending").
		Scopes(filter.Employees("e")).
		Count(&n).Error
	return n, err
}

func (r *repository) DepartmentAttendance(ctx context.Context, date time.Time, filter scope.Filter, limit int) ([]AttendanceRow, error) {
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.id AS employee_id, e.name, a.date, a.check_in, a.check_out, a.status").
		Joins("LEFT JOIN attendance a ON a.employee_id = e.id AND a.date = ?", date).
		Scopes(filter.Employees("e")).
		Order("e.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) RecentAttendance(ctx context.Context, employeeID uuid.UUID, limit int) ([]AttendanceRow, error) {
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).
		Table("attendance AS a").
		Select("a.employee_id, a.date, a.check_in, a.check_out, a.status").
		Where("a.employee_id = ?", employeeID).
		Order("a.date DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountPresent(ctx context.Context, employeeID uuid.UUID, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("attendance").
		Where("employee_id = ? AND status = ? AND date >= ? AND date < ?", employeeID, "present", from, to).
		Count(&n).Error
	return n, err
}
