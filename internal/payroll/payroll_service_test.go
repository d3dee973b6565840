package payroll_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	auditmock "go-hrms/internal/audit/mock"
	"go-hrms/internal/identity"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	payrollmock "go-hrms/internal/payroll/mock"
	"go-hrms/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  payroll.Service
	repo     *payrollmock.MockRepository
	recorder *auditmock.MockRecorder
}

var (
	clock    = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	march    = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	finance  = uuid.New()
	selfID   = uuid.New()
	admin    = identity.Caller{UserID: uuid.New(), Name: "Root", Role: identity.RoleAdmin}
	hrFin    = identity.Caller{UserID: uuid.New(), Name: "Hana", Role: identity.RoleHR, DepartmentID: &finance}
	employee = identity.Caller{UserID: uuid.New(), Name: "Dana", Role: identity.RoleEmployee, EmployeeID: &selfID, DepartmentID: &finance}
)

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	repo := payrollmock.NewMockRepository(ctrl)
	recorder := auditmock.NewMockRecorder(ctrl)
	return &serviceDeps{
		sqlMock:  sqlMock,
		service:  payroll.NewServiceWithClock(gdb, repo, recorder, func() time.Time { return clock }),
		repo:     repo,
		recorder: recorder,
	}
}

func slip(employeeID uuid.UUID, departmentID uuid.UUID) *payroll.PayrollRow {
	dept := departmentID
	return &payroll.PayrollRow{
		Payroll: payroll.Payroll{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			MonthYear:   march,
			BasicSalary: decimal.RequireFromString("4200"),
			NetSalary:   decimal.RequireFromString("4200"),
			Status:      payroll.StatusProcessed,
		},
		Name:         "Dana",
		Position:     "Analyst",
		Department:   "Finance",
		DepartmentID: &dept,
	}
}

func TestPayrollService_ListByMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to current month in hr scope", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().ListByMonth(ctx, march, scope.Filter{DepartmentID: &finance}).
			Return([]payroll.PayrollRow{*slip(selfID, finance)}, nil)

		resp, err := deps.service.ListByMonth(ctx, hrFin, "")

		assert.NoError(t, err)
		assert.Equal(t, "2024-03", resp.Month)
		require.Len(t, resp.Slips, 1)
		assert.Equal(t, "4200.00", resp.Slips[0].BasicSalary)
	})

	t.Run("explicit month", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().ListByMonth(ctx, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), scope.Filter{All: true}).Return(nil, nil)

		resp, err := deps.service.ListByMonth(ctx, admin, "2023-12")

		assert.NoError(t, err)
		assert.Empty(t, resp.Slips)
	})

	t.Run("bad month", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.ListByMonth(ctx, admin, "12-2023")

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
	})
}

func TestPayrollService_Payslip(t *testing.T) {
	ctx := context.Background()

	t.Run("own slip renders pdf", func(t *testing.T) {
		deps := setupServiceTest(t)
		row := slip(selfID, finance)
		deps.repo.EXPECT().FindRow(ctx, row.ID).Return(row, nil)

		p, err := deps.service.Payslip(ctx, employee, row.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "payslip_2024-03.pdf", p.Filename)
		assert.True(t, bytes.HasPrefix(p.Content, []byte("%PDF-")))
	})

	t.Run("someone else's slip is not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		row := slip(uuid.New(), finance)
		deps.repo.EXPECT().FindRow(ctx, row.ID).Return(row, nil)

		_, err := deps.service.Payslip(ctx, employee, row.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})

	t.Run("missing slip", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.repo.EXPECT().FindRow(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Payslip(ctx, admin, id.String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}

func TestPayrollService_Generate(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	t.Run("creates missing slips from salaries", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().SalarySources(ctx).Return([]payroll.SalarySource{
			{EmployeeID: a, Salary: decimal.RequireFromString("3000")},
			{EmployeeID: b, Salary: decimal.RequireFromString("5000.50")},
		}, nil)
		deps.repo.EXPECT().CreateMissing(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rows []payroll.Payroll) (int64, error) {
			require.Len(t, rows, 2)
			assert.Equal(t, a, rows[0].EmployeeID)
			assert.Equal(t, march, rows[0].MonthYear)
			assert.True(t, rows[1].NetSalary.Equal(decimal.RequireFromString("5000.50")))
			assert.Equal(t, payroll.StatusProcessed, rows[1].Status)
			return 1, nil
		})
		deps.sqlMock.ExpectCommit()
		deps.recorder.EXPECT().Record(ctx, admin, "Payroll Generated", "Generated payroll for 2024-03: 1 slips")

		resp, err := deps.service.Generate(ctx, admin, "2024-03")

		assert.NoError(t, err)
		assert.Equal(t, payroll.GenerateResponse{Month: "2024-03", Created: 1, Skipped: 1}, resp)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad month writes nothing", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Generate(ctx, admin, "March")

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
