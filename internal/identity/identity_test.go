package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCaller(t *testing.T) {
	dept := uuid.New()
	other := uuid.New()
	emp := uuid.New()

	hr := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR, DepartmentID: &dept, EmployeeID: &emp}

	assert.True(t, hr.Authenticated())
	assert.True(t, hr.IsHR())
	assert.True(t, hr.InDepartment(&dept))
	assert.False(t, hr.InDepartment(&other))
	assert.False(t, hr.InDepartment(nil))
	assert.True(t, hr.IsEmployeeSelf(emp))

	assert.False(t, identity.Caller{}.Authenticated())
	assert.False(t, identity.Caller{UserID: uuid.New(), Role: "root"}.Authenticated())

	noDept := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR}
	assert.False(t, noDept.InDepartment(&dept))
}

func TestGinRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.False(t, identity.FromGin(c).Authenticated())

	caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	identity.SetGin(c, caller)

	assert.Equal(t, caller, identity.FromGin(c))
	got, ok := identity.FromContext(c.Request.Context())
	assert.True(t, ok)
	assert.Equal(t, caller.UserID, got.UserID)

	_, ok = identity.FromContext(context.Background())
	assert.False(t, ok)
}
