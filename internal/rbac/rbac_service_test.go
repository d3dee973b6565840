package rbac_test

import (
	"testing"

	"go-hrms/internal/identity"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc, err := rbac.NewService(e)
	require.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     identity.Role
		resource string
		action   string
		want     bool
	}{
		{"admin manages departments", identity.RoleAdmin, rbac.ResDepartment, rbac.ActManage, true},
		{"hr cannot manage departments", identity.RoleHR, rbac.ResDepartment, rbac.ActManage, false},
		{"employee cannot manage departments", identity.RoleEmployee, rbac.ResDepartment, rbac.ActManage, false},
		{"admin dashboard only for admin", identity.RoleHR, rbac.ResDashboard, rbac.ActAdmin, false},
		{"hr dashboard", identity.RoleHR, rbac.ResDashboard, rbac.ActHR, true},
		{"employee dashboard", identity.RoleEmployee, rbac.ResDashboard, rbac.ActEmployee, true},
		{"admin leave view", identity.RoleAdmin, rbac.ResLeave, rbac.ActAdmin, true},
		{"hr has no admin leave view", identity.RoleHR, rbac.ResLeave, rbac.ActAdmin, false},
		{"hr leave view", identity.RoleHR, rbac.ResLeave, rbac.ActHR, true},
		{"admin has no hr leave view", identity.RoleAdmin, rbac.ResLeave, rbac.ActHR, false},
		{"employee has no leave view", identity.RoleEmployee, rbac.ResLeave, rbac.ActHR, false},
		{"admin attendance view", identity.RoleAdmin, rbac.ResAttendance, rbac.ActAdmin, true},
		{"hr has no admin attendance view", identity.RoleHR, rbac.ResAttendance, rbac.ActAdmin, false},
		{"admin has no hr attendance view", identity.RoleAdmin, rbac.ResAttendance, rbac.ActHR, false},
		{"hr has no admin payroll view", identity.RoleHR, rbac.ResPayroll, rbac.ActAdmin, false},
		{"admin has no hr payroll view", identity.RoleAdmin, rbac.ResPayroll, rbac.ActHR, false},
		{"admin reports page", identity.RoleAdmin, rbac.ResReport, rbac.ActAdmin, true},
		{"admin has no hr reports page", identity.RoleAdmin, rbac.ResReport, rbac.ActHR, false},
		{"hr manual attendance", identity.RoleHR, rbac.ResAttendance, rbac.ActManual, true},
		{"admin has no manual attendance", identity.RoleAdmin, rbac.ResAttendance, rbac.ActManual, false},
		{"every role checks in", identity.RoleAdmin, rbac.ResAttendance, rbac.ActSelf, true},
		{"audit admin only", identity.RoleHR, rbac.ResAudit, rbac.ActRead, false},
		{"reports for hr", identity.RoleHR, rbac.ResReport, rbac.ActExport, true},
		{"reports not for employee", identity.RoleEmployee, rbac.ResReport, rbac.ActExport, false},
		{"notifications for employee", identity.RoleEmployee, rbac.ResNotification, rbac.ActRead, true},
		{"anonymous denied", identity.Role(""), rbac.ResProfile, rbac.ActRead, false},
		{"unknown role denied", identity.Role("root"), rbac.ResProfile, rbac.ActRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRBACService_Permissions(t *testing.T) {
	svc := newService(t)

	perms, err := svc.Permissions(identity.RoleEmployee)
	require.NoError(t, err)

	assert.Contains(t, perms, "dashboard:employee")
	assert.Contains(t, perms, "leave:apply")
	assert.NotContains(t, perms, "leave:hr")
	assert.IsIncreasing(t, perms)
}
