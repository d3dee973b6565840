package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fakeAuthService struct {
	loginFn    func(ctx context.Context, req auth.LoginRequest) (identity.Caller, error)
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
	loggedOut  []identity.Caller
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (identity.Caller, error) {
	return f.loginFn(ctx, req)
}
func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return f.registerFn(ctx, req)
}
func (f *fakeAuthService) Logout(ctx context.Context, caller identity.Caller) {
	f.loggedOut = append(f.loggedOut, caller)
}

type fakeSessions struct {
	startErr error
	started  []identity.Caller
	ended    int
}

func (f *fakeSessions) Start(c *gin.Context, caller identity.Caller) error {
	f.started = append(f.started, caller)
	return f.startErr
}
func (f *fakeSessions) End(c *gin.Context) { f.ended++ }

func postJSON(path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAuthHandler_Login(t *testing.T) {
	hr := identity.Caller{UserID: uuid.New(), Email: "hana@corp.io", Role: identity.RoleHR}

	t.Run("starts a session and points at the dashboard", func(t *testing.T) {
		svc := &fakeAuthService{loginFn: func(ctx context.Context, req auth.LoginRequest) (identity.Caller, error) {
			return hr, nil
		}}
		sessions := &fakeSessions{}
		c, w := postJSON("/login", `{"email":"hana@corp.io","password":"secret1"}`)

		auth.NewHandler(svc, sessions).Login(c)

		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, http.StatusOK, w.Code)
		var data auth.LoginResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "/hr/dashboard", data.Redirect)
		assert.Len(t, sessions.started, 1)
	})

	t.Run("bad credentials never start a session", func(t *testing.T) {
		svc := &fakeAuthService{loginFn: func(context.Context, auth.LoginRequest) (identity.Caller, error) {
			return identity.Caller{}, autherrors.ErrInvalidCredentials
		}}
		sessions := &fakeSessions{}
		c, w := postJSON("/login", `{"email":"hana@corp.io","password":"nope"}`)

		auth.NewHandler(svc, sessions).Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, sessions.started)
	})

	t.Run("session store down", func(t *testing.T) {
		svc := &fakeAuthService{loginFn: func(context.Context, auth.LoginRequest) (identity.Caller, error) {
			return hr, nil
		}}
		c, w := postJSON("/login", `{"email":"hana@corp.io","password":"secret1"}`)

		auth.NewHandler(svc, &fakeSessions{startErr: errors.New("redis down")}).Login(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	caller := identity.Caller{UserID: uuid.New(), Email: "eve@corp.io", Role: identity.RoleEmployee}
	svc := &fakeAuthService{}
	sessions := &fakeSessions{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/logout", nil)
	identity.SetGin(c, caller)

	auth.NewHandler(svc, sessions).Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sessions.ended)
	assert.Equal(t, []identity.Caller{caller}, svc.loggedOut)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := &fakeAuthService{registerFn: func(context.Context, auth.RegisterRequest) (auth.AuthResponse, error) {
		return auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}}
	c, w := postJSON("/register", `{"name":"Eve","email":"eve@corp.io","password":"secret1","role":"employee"}`)

	auth.NewHandler(svc, &fakeSessions{}).Register(c)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered!", env.Error.Message)
}
