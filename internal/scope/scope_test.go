package scope_test

import (
	"testing"

	"go-hrms/internal/identity"
	"go-hrms/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID uuid.UUID
}

func (row) TableName() string { return "employees" }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestForResource_DepartmentAxis(t *testing.T) {
	dept := uuid.New()
	emp := uuid.New()

	admin := identity.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	hr := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR, DepartmentID: &dept}
	hrNoDept := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR}
	employee := identity.Caller{UserID: uuid.New(), Role: identity.RoleEmployee, EmployeeID: &emp, DepartmentID: &dept}

	assert.True(t, scope.ForResource(scope.KindLeave, admin).All)

	f := scope.ForResource(scope.KindEmployee, hr)
	assert.Equal(t, dept, *f.DepartmentID)
	assert.True(t, f.AllowsEmployee(uuid.New(), &dept))
	other := uuid.New()
	assert.False(t, f.AllowsEmployee(uuid.New(), &other))
	assert.False(t, f.AllowsEmployee(uuid.New(), nil))

	assert.True(t, scope.ForResource(scope.KindAttendance, hrNoDept).None)

	f = scope.ForResource(scope.KindPayroll, employee)
	assert.Nil(t, f.DepartmentID)
	assert.True(t, f.AllowsEmployee(emp, &dept))
	assert.False(t, f.AllowsEmployee(uuid.New(), &dept))

	assert.True(t, scope.ForResource(scope.KindLeave, identity.Caller{}).None)
}

func TestForResource_DocumentAxis(t *testing.T) {
	dept := uuid.New()
	hr := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR, DepartmentID: &dept}
	admin := identity.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}

	f := scope.ForResource(scope.KindDocument, hr)
	assert.Nil(t, f.DepartmentID)
	assert.True(t, f.AllowsOwner(hr.UserID))
	assert.False(t, f.AllowsOwner(uuid.New()))

	assert.True(t, scope.ForResource(scope.KindDocument, admin).AllowsOwner(uuid.New()))
	assert.False(t, scope.Own(admin).AllowsOwner(uuid.New()))
	assert.True(t, scope.Own(admin).AllowsOwner(admin.UserID))
}

func TestFilter_Employees_SQL(t *testing.T) {
	db := dryRunDB(t)
	dept := uuid.New()
	emp := uuid.New()

	sql := func(f scope.Filter) string {
		var rows []row
		stmt := db.Table("employees AS e").Scopes(f.Employees("e")).Find(&rows).Statement
		return stmt.SQL.String()
	}

	assert.NotContains(t, sql(scope.Filter{All: true}), "WHERE")
	assert.Contains(t, sql(scope.Filter{DepartmentID: &dept}), "e.department_id = $1")
	assert.Contains(t, sql(scope.Filter{EmployeeID: &emp}), "e.id = $1")
	assert.Contains(t, sql(scope.Filter{None: true}), "1 = 0")
	assert.Contains(t, sql(scope.Filter{}), "1 = 0")
}

func TestFilter_Owner_SQL(t *testing.T) {
	db := dryRunDB(t)
	uid := uuid.New()

	var rows []row
	stmt := db.Table("documents").Scopes(scope.Filter{UserID: &uid}.Owner("user_id")).Find(&rows).Statement
	assert.Contains(t, stmt.SQL.String(), "user_id = $1")
	assert.Equal(t, uid, stmt.Vars[0])
}
