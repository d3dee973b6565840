package attendance

import (
	"context"
	"time"

	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)
	SetCheckOut(ctx context.Context, id uuid.UUID, at time.Time) error
	Upsert(ctx context.Context, a *Attendance) error
	ListByDate(ctx context.Context, date time.Time, filter scope.Filter) ([]DailyRow, error)
	History(ctx context.Context, employeeID uuid.UUID, limit int) ([]Attendance, error)
	ListBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]Attendance, error)
	ListEmployees(ctx context.Context, filter scope.Filter) ([]EmployeeRef, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(time.DateOnly)).
		First(&a).Error
	return &a, err
}

func (r *repository) SetCheckOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Update("check_out", at).Error
}

// Upsert writes the row keyed by (employee_id, date), replacing times and
// status of an existing one.
func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"check_in", "check_out", "status"}),
		}).
		Create(a).Error
}

func (r *repository) ListByDate(ctx context.Context, date time.Time, filter scope.Filter) ([]DailyRow, error) {
	var rows []DailyRow
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(`e.id AS employee_id, e.name, COALESCE(e.position, '') AS position,
			COALESCE(d.name, '') AS department, a.check_in, a.check_out, a.status`).
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Joins("LEFT JOIN attendance a ON a.employee_id = e.id AND a.date = ?", date.Format(time.DateOnly)).
		Scopes(filter.Employees("e")).
		Order("d.name ASC, e.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) History(ctx context.Context, employeeID uuid.UUID, limit int) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date < ?", from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListEmployees(ctx context.Context, filter scope.Filter) ([]EmployeeRef, error) {
	var rows []EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.id, e.name, COALESCE(e.position, '') AS position").
		Scopes(filter.Employees("e")).
		Order("e.name ASC").
		Scan(&rows).Error
	return rows, err
}
