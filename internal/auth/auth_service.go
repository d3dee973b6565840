package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/audit"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/identity"
	"go-hrms/internal/shared/dberr"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default departments for self-registered accounts.
const (
	DepartmentHR = "Human Resources"
	DepartmentIT = "IT"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (identity.Caller, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Logout(ctx context.Context, caller identity.Caller)
}

type service struct {
	db          *gorm.DB
	users       user.Repository
	employees   employee.Repository
	departments department.Repository
	audit       audit.Recorder
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	users user.Repository,
	employees employee.Repository,
	departments department.Repository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		users:       users,
		employees:   employees,
		departments: departments,
		audit:       recorder,
		now:         time.Now,
		logger:      l,
	}
}

// Login verifies the credentials and builds the session snapshot. Unknown
// email and wrong password are indistinguishable to the client.
func (s *service) Login(ctx context.Context, req LoginRequest) (identity.Caller, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login load user failed", zap.Error(err))
			return identity.Caller{}, err
		}
		return identity.Caller{}, autherrors.ErrInvalidCredentials
	}
	if !user.CheckPassword(u.PasswordHash, req.Password) {
		s.logger.Warn("login wrong password", zap.String("user_id", u.ID.String()))
		return identity.Caller{}, autherrors.ErrInvalidCredentials
	}

	caller := identity.Caller{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}

	e, err := s.employees.FindByUserID(ctx, u.ID)
	switch {
	case err == nil:
		id := e.ID
		caller.EmployeeID = &id
		caller.DepartmentID = e.DepartmentID
		caller.Position = e.Position
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		s.logger.Error("login load employee failed", zap.Error(err))
		return identity.Caller{}, err
	}

	s.audit.Record(ctx, caller, audit.ActionLogin, "User "+u.Email+" logged in successfully")
	s.logger.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role.String()))
	return caller, nil
}

// Register creates a user and its employee row. Only employee and hr roles
// can self-register; admins come from the seed.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := identity.Role(req.Role)
	if role != identity.RoleEmployee && role != identity.RoleHR {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AuthResponse{}, tx.Error
	}
	defer tx.Rollback()

	users := s.users.WithTx(tx)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	deptID, err := s.defaultDepartment(ctx, s.departments.WithTx(tx), role)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := users.Create(ctx, u); err != nil {
		if dberr.IsUniqueViolation(err) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	e := &employee.Employee{
		ID:           uuid.New(),
		UserID:       &u.ID,
		Name:         u.Name,
		Email:        u.Email,
		DepartmentID: &deptID,
		Salary:       decimal.Zero,
		JoiningDate:  s.now().UTC().Truncate(24 * time.Hour),
		Role:         role,
	}
	if err := s.employees.WithTx(tx).Create(ctx, e); err != nil {
		s.logger.Error("register employee persist failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", u.ID.String()), zap.String("role", role.String()))
	return AuthResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         role.String(),
		EmployeeID:   e.ID.String(),
		DepartmentID: deptID.String(),
	}, nil
}

func (s *service) defaultDepartment(ctx context.Context, repo department.Repository, role identity.Role) (uuid.UUID, error) {
	name := DepartmentIT
	if role == identity.RoleHR {
		name = DepartmentHR
	}

	d, err := repo.FindByName(ctx, name)
	if err == nil {
		return d.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if len(all) == 0 {
		return uuid.Nil, autherrors.ErrNoDepartment
	}
	return all[0].ID, nil
}

func (s *service) Logout(ctx context.Context, caller identity.Caller) {
	s.audit.Record(ctx, caller, audit.ActionLogout, "User "+caller.Email+" logged out")
}

// Me renders the session snapshot.
func Me(caller identity.Caller) AuthResponse {
	resp := AuthResponse{
		ID:       caller.UserID.String(),
		Name:     caller.Name,
		Email:    caller.Email,
		Role:     caller.Role.String(),
		Position: caller.Position,
	}
	if caller.EmployeeID != nil {
		resp.EmployeeID = caller.EmployeeID.String()
	}
	if caller.DepartmentID != nil {
		resp.DepartmentID = caller.DepartmentID.String()
	}
	return resp
}

// DashboardPath is where a freshly logged in caller lands.
func DashboardPath(role identity.Role) string {
	switch role {
	case identity.RoleAdmin:
		return "/admin/dashboard"
	case identity.RoleHR:
		return "/hr/dashboard"
	default:
		return "/employee/dashboard"
	}
}
