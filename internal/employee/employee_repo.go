package employee

import (
	"context"

	"go-hrms/internal/identity"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	FindRow(ctx context.Context, id uuid.UUID) (*EmployeeRow, error)
	List(ctx context.Context, role identity.Role, filter scope.Filter) ([]EmployeeRow, error)
	Update(ctx context.Context, e *Employee) error
	UpdateContact(ctx context.Context, id uuid.UUID, phone, address string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, req ProfileRequest) error
	UpdateSalary(ctx context.Context, id uuid.UUID, salary decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "user_id = ?", userID).Error
	return &e, err
}

func (r *repository) FindRow(ctx context.Context, id uuid.UUID) (*EmployeeRow, error) {
	var row EmployeeRow
	res := r.joined(ctx).Where("e.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context, role identity.Role, filter scope.Filter) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := r.joined(ctx).
		Where("e.role = ?", role).
		Scopes(filter.Employees("e")).
		Order("e.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.*, COALESCE(d.name, '') AS department_name").
		Joins("LEFT JOIN departments d ON d.id = e.department_id")
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) UpdateContact(ctx context.Context, id uuid.UUID, phone, address string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"phone": phone, "address": address}).Error
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, req ProfileRequest) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"phone":             req.Phone,
			"address":           req.Address,
			"emergency_contact": req.EmergencyContact,
		}).Error
}

func (r *repository) UpdateSalary(ctx context.Context, id uuid.UUID, salary decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("salary", salary)
	return res.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
