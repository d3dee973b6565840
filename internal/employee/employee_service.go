package employee

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-hrms/internal/audit"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/identity"
	"go-hrms/internal/scope"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Defaults holds the initial passwords handed out with admin-created
// accounts.
type Defaults struct {
	EmployeePassword string
	HRPassword       string
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, caller identity.Caller) ([]EmployeeResponse, error)
	Options(ctx context.Context, caller identity.Caller) ([]EmployeeOption, error)
	Create(ctx context.Context, caller identity.Caller, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, caller identity.Caller, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, caller identity.Caller, id string) error

	ListHRManagers(ctx context.Context) ([]EmployeeResponse, error)
	CreateHRManager(ctx context.Context, caller identity.Caller, req CreateHRManagerRequest) (EmployeeResponse, error)
	DeleteHRManager(ctx context.Context, caller identity.Caller, id string) error

	UpdateContact(ctx context.Context, caller identity.Caller, id string, req ContactRequest) error
	GetProfile(ctx context.Context, caller identity.Caller) (EmployeeResponse, error)
	UpdateProfile(ctx context.Context, caller identity.Caller, req ProfileRequest) error

	ListSalaries(ctx context.Context) ([]EmployeeResponse, error)
	UpdateSalaries(ctx context.Context, caller identity.Caller, salaries map[string]string) (int, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	users    user.Repository
	audit    audit.Recorder
	defaults Defaults
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	recorder audit.Recorder,
	defaults Defaults,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		audit:    recorder,
		defaults: defaults,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) List(ctx context.Context, caller identity.Caller) ([]EmployeeResponse, error) {
	filter := scope.ForResource(scope.KindEmployee, caller)
	rows, err := s.repo.List(ctx, identity.RoleEmployee, filter)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Options(ctx context.Context, caller identity.Caller) ([]EmployeeOption, error) {
	rows, err := s.repo.List(ctx, identity.RoleEmployee, scope.ForResource(scope.KindEmployee, caller))
	if err != nil {
		return nil, err
	}
	opts := make([]EmployeeOption, len(rows))
	for i, r := range rows {
		opts[i] = EmployeeOption{ID: r.ID.String(), Name: r.Name}
	}
	return opts, nil
}

func (s *service) Create(ctx context.Context, caller identity.Caller, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	deptID, err := parseOptionalID(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	salary, err := parseSalary(req.Salary)
	if err != nil {
		return EmployeeResponse{}, err
	}
	joining := s.now().UTC().Truncate(24 * time.Hour)
	if req.JoiningDate != "" {
		joining, err = time.Parse(time.DateOnly, req.JoiningDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
		}
	}
	position := req.Position
	if position == "" {
		position = "Staff"
	}

	e := &Employee{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            req.Phone,
		DepartmentID:     deptID,
		Position:         position,
		Salary:           salary,
		JoiningDate:      joining,
		EmergencyContact: req.EmergencyContact,
		Address:          req.Address,
		Role:             identity.RoleEmployee,
	}
	if err := s.createWithUser(ctx, e, s.defaults.EmployeePassword); err != nil {
		return EmployeeResponse{}, err
	}

	s.audit.Record(ctx, caller, audit.ActionEmployeeAdded, fmt.Sprintf("Added employee %s (%s)", e.Name, e.Email))
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", e.ID.String()),
	)
	return mapToResponse(EmployeeRow{Employee: *e}), nil
}

func (s *service) CreateHRManager(ctx context.Context, caller identity.Caller, req CreateHRManagerRequest) (EmployeeResponse, error) {
	deptID, err := parseOptionalID(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		DepartmentID: deptID,
		Position:     "HR Manager",
		Salary:       decimal.Zero,
		JoiningDate:  s.now().UTC().Truncate(24 * time.Hour),
		Address:      req.Address,
		Role:         identity.RoleHR,
	}
	if err := s.createWithUser(ctx, e, s.defaults.HRPassword); err != nil {
		return EmployeeResponse{}, err
	}

	s.audit.Record(ctx, caller, audit.ActionHRManagerAdded, fmt.Sprintf("Added HR manager %s (%s)", e.Name, e.Email))
	s.logger.Info("create hr manager success", zap.String("employee_id", e.ID.String()))
	return mapToResponse(EmployeeRow{Employee: *e}), nil
}

// createWithUser inserts the login account and the employee row in one
// transaction.
func (s *service) createWithUser(ctx context.Context, e *Employee, password string) error {
	hash, err := user.HashPassword(password)
	if err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(tx.Error))
		return tx.Error
	}
	defer tx.Rollback()

	u := &user.User{
		ID:           uuid.New(),
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: hash,
		Role:         e.Role,
	}
	if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
		s.logger.Warn("create employee user persist failed", zap.String("email", e.Email), zap.Error(err))
		return mapRepositoryError(err)
	}

	e.UserID = &u.ID
	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Update(ctx context.Context, caller identity.Caller, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	empID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	deptID, err := parseOptionalID(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	salary, err := parseSalary(req.Salary)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	e.Name = strings.TrimSpace(req.Name)
	e.Phone = req.Phone
	e.DepartmentID = deptID
	e.Position = req.Position
	e.Salary = salary
	e.Address = req.Address

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.audit.Record(ctx, caller, audit.ActionEmployeeUpdated, fmt.Sprintf("Updated employee %s", e.Name))
	return mapToResponse(EmployeeRow{Employee: *e}), nil
}

func (s *service) Delete(ctx context.Context, caller identity.Caller, id string) error {
	if err := s.deleteWithUser(ctx, id, identity.RoleEmployee); err != nil {
		return err
	}
	s.audit.Record(ctx, caller, audit.ActionEmployeeDeleted, "Deleted employee ID "+id)
	return nil
}

func (s *service) DeleteHRManager(ctx context.Context, caller identity.Caller, id string) error {
	if err := s.deleteWithUser(ctx, id, identity.RoleHR); err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return employeeerrors.ErrHRManagerNotFound
		}
		return err
	}
	s.audit.Record(ctx, caller, audit.ActionHRManagerDeleted, "Deleted HR manager ID "+id)
	return nil
}

// deleteWithUser removes the employee row of the given role and its backing
// user in the same transaction.
func (s *service) deleteWithUser(ctx context.Context, id string, role identity.Role) error {
	empID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindByID(ctx, empID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if e.Role != role {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := qtx.Delete(ctx, empID); err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	if e.UserID != nil {
		if err := s.users.WithTx(tx).Delete(ctx, *e.UserID); err != nil {
			s.logger.Error("delete employee user failed", zap.String("user_id", e.UserID.String()), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("delete employee success", zap.String("employee_id", id), zap.String("role", role.String()))
	return nil
}

func (s *service) ListHRManagers(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.List(ctx, identity.RoleHR, scope.Filter{All: true})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// UpdateContact lets HR change phone and address of an employee in its own
// department. Rows outside the caller's scope are reported as not found.
func (s *service) UpdateContact(ctx context.Context, caller identity.Caller, id string, req ContactRequest) error {
	empID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !scope.ForResource(scope.KindEmployee, caller).AllowsEmployee(e.ID, e.DepartmentID) {
		s.logger.Warn("update contact outside scope",
			zap.String("employee_id", id),
			zap.String("caller_id", caller.UserID.String()),
		)
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.UpdateContact(ctx, empID, req.Phone, req.Address); err != nil {
		return err
	}
	s.audit.Record(ctx, caller, audit.ActionContactUpdated, "Updated contact details for "+e.Name)
	return nil
}

func (s *service) GetProfile(ctx context.Context, caller identity.Caller) (EmployeeResponse, error) {
	if caller.EmployeeID == nil {
		return EmployeeResponse{}, employeeerrors.ErrProfileNotFound
	}
	row, err := s.repo.FindRow(ctx, *caller.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrProfileNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) UpdateProfile(ctx context.Context, caller identity.Caller, req ProfileRequest) error {
	if caller.EmployeeID == nil {
		return employeeerrors.ErrProfileNotFound
	}
	if err := s.repo.UpdateProfile(ctx, *caller.EmployeeID, req); err != nil {
		s.logger.Error("update profile failed", zap.Error(err))
		return err
	}
	s.audit.Record(ctx, caller, audit.ActionProfileUpdated, "Updated own profile")
	return nil
}

func (s *service) ListSalaries(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.List(ctx, identity.RoleEmployee, scope.Filter{All: true})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// UpdateSalaries applies every entry or none. Any bad id, blank or bad
// amount, or storage failure rolls back the whole batch with a generic error.
func (s *service) UpdateSalaries(ctx context.Context, caller identity.Caller, salaries map[string]string) (int, error) {
	if len(salaries) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(salaries))
	for id := range salaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, id := range ids {
		empID, err := uuid.Parse(id)
		if err != nil {
			s.logger.Warn("salary batch invalid employee id", zap.String("employee_id", id))
			return 0, employeeerrors.ErrSalaryUpdateFailed
		}
		if strings.TrimSpace(salaries[id]) == "" {
			s.logger.Warn("salary batch blank amount", zap.String("employee_id", id))
			return 0, employeeerrors.ErrSalaryUpdateFailed
		}
		amount, err := parseSalary(salaries[id])
		if err != nil {
			s.logger.Warn("salary batch invalid amount", zap.String("employee_id", id))
			return 0, employeeerrors.ErrSalaryUpdateFailed
		}
		if err := qtx.UpdateSalary(ctx, empID, amount); err != nil {
			s.logger.Error("salary batch update failed", zap.String("employee_id", id), zap.Error(err))
			return 0, employeeerrors.ErrSalaryUpdateFailed
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("salary batch commit failed", zap.Error(err))
		return 0, employeeerrors.ErrSalaryUpdateFailed
	}

	s.audit.Record(ctx, caller, audit.ActionSalaryUpdated, fmt.Sprintf("Updated salaries for %d employees", len(ids)))
	return len(ids), nil
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDepartmentID
	}
	return &id, nil
}

func parseSalary(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, employeeerrors.ErrInvalidSalary
	}
	return d, nil
}

func mapToResponse(r EmployeeRow) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               r.ID.String(),
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		DepartmentName:   r.DepartmentName,
		Position:         r.Position,
		Salary:           r.Salary.StringFixed(2),
		EmergencyContact: r.EmergencyContact,
		Address:          r.Address,
		Role:             r.Role.String(),
	}
	if r.UserID != nil {
		v := r.UserID.String()
		resp.UserID = &v
	}
	if r.DepartmentID != nil {
		v := r.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if !r.JoiningDate.IsZero() {
		resp.JoiningDate = r.JoiningDate.Format(time.DateOnly)
	}
	return resp
}

func mapToListResponse(rows []EmployeeRow) []EmployeeResponse {
	out := make([]EmployeeResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r)
	}
	return out
}
