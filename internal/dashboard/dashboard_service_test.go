package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/dashboard"
	dashboardmock "go-hrms/internal/dashboard/mock"
	"go-hrms/internal/identity"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow  = time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	today     = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	salesDept = uuid.New()
	selfEmpID = uuid.New()
	admin     = identity.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	hrSales   = identity.Caller{UserID: uuid.New(), Role: identity.RoleHR, DepartmentID: &salesDept}
	employee1 = identity.Caller{UserID: uuid.New(), Role: identity.RoleEmployee, EmployeeID: &selfEmpID, DepartmentID: &salesDept}
)

func setup(t *testing.T) (dashboard.Service, *dashboardmock.MockRepository) {
	t.Helper()
	repo := dashboardmock.NewMockRepository(gomock.NewController(t))
	return dashboard.NewServiceWithClock(repo, func() time.Time { return fixedNow }), repo
}

func strPtr(s string) *string { return &s }

func TestService_Admin(t *testing.T) {
	svc, repo := setup(t)
	all := scope.ForResource(scope.KindEmployee, admin)

	repo.EXPECT().CountEmployees(gomock.Any(), identity.RoleEmployee, all).Return(int64(12), nil)
	repo.EXPECT().CountEmployees(gomock.Any(), identity.RoleHR, all).Return(int64(2), nil)
	repo.EXPECT().CountDepartments(gomock.Any()).Return(int64(3), nil)
	repo.EXPECT().CountAttendance(gomock.Any(), today, all).Return(int64(9), nil)
	repo.EXPECT().CountPendingLeaves(gomock.Any(), all).Return(int64(4), nil)

	out, err := svc.Admin(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, dashboard.AdminDashboard{
		TotalEmployees: 12, TotalHR: 2, TotalDepartments: 3, TodayAttendance: 9, PendingLeaves: 4,
	}, out)
}

func TestService_Admin_QueryFailure(t *testing.T) {
	svc, repo := setup(t)

	repo.EXPECT().CountEmployees(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountDepartments(gomock.Any()).Return(int64(0), errors.New("db down"))
	repo.EXPECT().CountAttendance(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountPendingLeaves(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	_, err := svc.Admin(context.Background(), admin)
	assert.EqualError(t, err, "db down")
}

func TestService_HR(t *testing.T) {
	svc, repo := setup(t)
	dept := scope.ForResource(scope.KindEmployee, hrSales)
	in := time.Date(2024, 3, 15, 8, 55, 0, 0, time.UTC)

	repo.EXPECT().CountEmployees(gomock.Any(), identity.RoleEmployee, dept).Return(int64(5), nil)
	repo.EXPECT().CountAttendance(gomock.Any(), today, dept).Return(int64(3), nil)
	repo.EXPECT().CountPendingLeaves(gomock.Any(), dept).Return(int64(1), nil)
	repo.EXPECT().DepartmentAttendance(gomock.Any(), today, dept, 5).Return([]dashboard.AttendanceRow{
		{Name: "Ann", Date: &today, CheckIn: &in, Status: strPtr("present")},
		{Name: "Bob"},
	}, nil)

	out, err := svc.HR(context.Background(), hrSales)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.DepartmentEmployees)
	require.Len(t, out.DepartmentAttendance, 2)
	assert.Equal(t, "08:55:00", *out.DepartmentAttendance[0].CheckIn)
	assert.Nil(t, out.DepartmentAttendance[1].Status)
}

func TestService_Employee(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	t.Run("marked today", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().CountPresent(gomock.Any(), selfEmpID, monthStart, monthStart.AddDate(0, 1, 0)).Return(int64(10), nil)
		repo.EXPECT().RecentAttendance(gomock.Any(), selfEmpID, 5).Return([]dashboard.AttendanceRow{
			{Date: &today, Status: strPtr("half_day")},
			{Date: &yesterday, Status: strPtr("present")},
		}, nil)

		out, err := svc.Employee(context.Background(), employee1)
		require.NoError(t, err)
		assert.Equal(t, "half_day", out.TodayStatus)
		assert.Equal(t, int64(10), out.PresentDays)
		assert.Equal(t, "2024-03-14", out.RecentAttendance[1].Date)
	})

	t.Run("not marked today", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().CountPresent(gomock.Any(), selfEmpID, gomock.Any(), gomock.Any()).Return(int64(0), nil)
		repo.EXPECT().RecentAttendance(gomock.Any(), selfEmpID, 5).Return([]dashboard.AttendanceRow{
			{Date: &yesterday, Status: strPtr("present")},
		}, nil)

		out, err := svc.Employee(context.Background(), employee1)
		require.NoError(t, err)
		assert.Equal(t, dashboard.StatusNotMarked, out.TodayStatus)
	})

	t.Run("no employee record", func(t *testing.T) {
		svc, _ := setup(t)
		out, err := svc.Employee(context.Background(), identity.Caller{Role: identity.RoleEmployee})
		require.NoError(t, err)
		assert.Equal(t, dashboard.StatusNotMarked, out.TodayStatus)
		assert.Empty(t, out.RecentAttendance)
	})
}
