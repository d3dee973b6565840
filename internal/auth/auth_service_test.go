package auth_test

import (
	"context"
	"errors"
	"testing"

	auditmock "go-hrms/internal/audit/mock"
	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/department"
	departmentmock "go-hrms/internal/department/mock"
	"go-hrms/internal/employee"
	employeemock "go-hrms/internal/employee/mock"
	"go-hrms/internal/identity"
	"go-hrms/internal/user"
	usermock "go-hrms/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock     sqlmock.Sqlmock
	service     auth.Service
	users       *usermock.MockRepository
	employees   *employeemock.MockRepository
	departments *departmentmock.MockRepository
	recorder    *auditmock.MockRecorder
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	deps := &serviceDeps{
		sqlMock:     sqlMock,
		users:       usermock.NewMockRepository(ctrl),
		employees:   employeemock.NewMockRepository(ctrl),
		departments: departmentmock.NewMockRepository(ctrl),
		recorder:    auditmock.NewMockRecorder(ctrl),
	}
	deps.service = auth.NewService(gdb, deps.users, deps.employees, deps.departments, deps.recorder)
	return deps
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := user.HashPassword("secret1")
	require.NoError(t, err)
	u := &user.User{ID: uuid.New(), Name: "Eve", Email: "eve@corp.io", PasswordHash: hash, Role: identity.RoleEmployee}

	t.Run("employee session carries employee and department", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID, deptID := uuid.New(), uuid.New()
		deps.users.EXPECT().FindByEmail(ctx, "eve@corp.io").Return(u, nil)
		deps.employees.EXPECT().FindByUserID(ctx, u.ID).Return(&employee.Employee{
			ID: empID, DepartmentID: &deptID, Position: "Engineer",
		}, nil)
		deps.recorder.EXPECT().Record(ctx, gomock.Any(), "Login", "User eve@corp.io logged in successfully")

		caller, err := deps.service.Login(ctx, auth.LoginRequest{Email: "EVE@corp.io", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, u.ID, caller.UserID)
		assert.Equal(t, empID, *caller.EmployeeID)
		assert.Equal(t, deptID, *caller.DepartmentID)
		assert.Equal(t, "Engineer", caller.Position)
	})

	t.Run("admin without employee row", func(t *testing.T) {
		deps := setupServiceTest(t)
		admin := &user.User{ID: uuid.New(), Email: "root@corp.io", PasswordHash: hash, Role: identity.RoleAdmin}
		deps.users.EXPECT().FindByEmail(ctx, "root@corp.io").Return(admin, nil)
		deps.employees.EXPECT().FindByUserID(ctx, admin.ID).Return(nil, gorm.ErrRecordNotFound)
		deps.recorder.EXPECT().Record(ctx, gomock.Any(), "Login", gomock.Any())

		caller, err := deps.service.Login(ctx, auth.LoginRequest{Email: "root@corp.io", Password: "secret1"})

		require.NoError(t, err)
		assert.Nil(t, caller.EmployeeID)
		assert.True(t, caller.IsAdmin())
	})

	t.Run("wrong password is not audited", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByEmail(ctx, "eve@corp.io").Return(u, nil)
		deps.recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Email: "eve@corp.io", Password: "nope"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.users.EXPECT().FindByEmail(ctx, "ghost@corp.io").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Email: "ghost@corp.io", Password: "x"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hr lands in Human Resources", func(t *testing.T) {
		deps := setupServiceTest(t)
		hrDept := uuid.New()

		deps.sqlMock.ExpectBegin()
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().FindByEmail(ctx, "hana@corp.io").Return(nil, gorm.ErrRecordNotFound)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().FindByName(ctx, "Human Resources").Return(&department.Department{ID: hrDept}, nil)
		deps.users.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, hrDept, *e.DepartmentID)
			assert.Equal(t, identity.RoleHR, e.Role)
			return nil
		})
		deps.sqlMock.ExpectCommit()
		deps.recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		resp, err := deps.service.Register(ctx, auth.RegisterRequest{
			Name: "Hana", Email: "hana@corp.io", Password: "secret1", Role: "hr",
		})

		require.NoError(t, err)
		assert.Equal(t, hrDept.String(), resp.DepartmentID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("falls back to first department", func(t *testing.T) {
		deps := setupServiceTest(t)
		first := uuid.New()

		deps.sqlMock.ExpectBegin()
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().FindByEmail(ctx, "eve@corp.io").Return(nil, gorm.ErrRecordNotFound)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().FindByName(ctx, "IT").Return(nil, gorm.ErrRecordNotFound)
		deps.departments.EXPECT().FindAll(ctx).Return([]department.DepartmentWithCount{
			{Department: department.Department{ID: first, Name: "Sales"}},
		}, nil)
		deps.users.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Register(ctx, auth.RegisterRequest{
			Name: "Eve", Email: "eve@corp.io", Password: "secret1", Role: "employee",
		})

		require.NoError(t, err)
		assert.Equal(t, first.String(), resp.DepartmentID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().FindByEmail(ctx, "eve@corp.io").Return(&user.User{}, nil)
		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			Name: "Eve", Email: "eve@corp.io", Password: "secret1", Role: "employee",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("admin role refused", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			Name: "Mallory", Email: "m@corp.io", Password: "secret1", Role: "admin",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("department lookup failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().FindByEmail(ctx, "eve@corp.io").Return(nil, gorm.ErrRecordNotFound)
		deps.departments.EXPECT().WithTx(gomock.Any()).Return(deps.departments)
		deps.departments.EXPECT().FindByName(ctx, "IT").Return(nil, errors.New("db down"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			Name: "Eve", Email: "eve@corp.io", Password: "secret1", Role: "employee",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", auth.DashboardPath(identity.RoleAdmin))
	assert.Equal(t, "/hr/dashboard", auth.DashboardPath(identity.RoleHR))
	assert.Equal(t, "/employee/dashboard", auth.DashboardPath(identity.RoleEmployee))
}
