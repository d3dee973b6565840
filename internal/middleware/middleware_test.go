package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/identity"
	"go-hrms/internal/middleware"
	"go-hrms/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuthorizer struct {
	enforceFn func(role identity.Role, resource, action string) (bool, error)
}

func (f *fakeAuthorizer) Enforce(role identity.Role, resource, action string) (bool, error) {
	return f.enforceFn(role, resource, action)
}

type fakeLoader struct {
	caller identity.Caller
	err    error
}

func (f *fakeLoader) Load(c *gin.Context) (identity.Caller, error) {
	return f.caller, f.err
}

type fakeCounter struct {
	n     int64
	err   error
	calls int
}

func (f *fakeCounter) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.calls++
	return f.n, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(loader middleware.SessionLoader, mws ...gin.HandlerFunc) (*gin.Engine, *bool) {
	called := false
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.LoadSession(loader))
	handlers := append(mws, func(c *gin.Context) {
		called = true
		c.String(http.StatusOK, "ok")
	})
	r.GET("/guarded", handlers...)
	r.POST("/guarded", handlers...)
	return r, &called
}

func TestAuthorize(t *testing.T) {
	allowHROnly := &fakeAuthorizer{enforceFn: func(role identity.Role, resource, action string) (bool, error) {
		assert.Equal(t, "leave", resource)
		assert.Equal(t, "hr", action)
		return role == identity.RoleHR, nil
	}}

	t.Run("no session redirects to login and skips handler", func(t *testing.T) {
		r, called := newRouter(&fakeLoader{err: session.ErrSessionNotFound}, middleware.Authorize(allowHROnly, "leave", "hr"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.False(t, *called)
	})

	t.Run("role outside set redirects", func(t *testing.T) {
		caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleEmployee}
		r, called := newRouter(&fakeLoader{caller: caller}, middleware.Authorize(allowHROnly, "leave", "hr"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.False(t, *called)
	})

	t.Run("enforcer error denies", func(t *testing.T) {
		failing := &fakeAuthorizer{enforceFn: func(identity.Role, string, string) (bool, error) {
			return false, errors.New("policy unavailable")
		}}
		caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR}
		r, called := newRouter(&fakeLoader{caller: caller}, middleware.Authorize(failing, "leave", "hr"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.False(t, *called)
	})

	t.Run("allowed role reaches handler", func(t *testing.T) {
		caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR}
		r, called := newRouter(&fakeLoader{caller: caller}, middleware.Authorize(allowHROnly, "leave", "hr"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *called)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

// newPipeline mirrors the registry: the counter is registered globally
// after the session loader, and each route carries its own guard.
func newPipeline(loader middleware.SessionLoader, counter middleware.UnreadCounter, guard gin.HandlerFunc) (*gin.Engine, *bool) {
	called := false
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.LoadSession(loader), middleware.NotificationCount(counter))
	r.GET("/guarded", guard, func(c *gin.Context) {
		called = true
		c.String(http.StatusOK, "ok")
	})
	return r, &called
}

func TestNotificationCount(t *testing.T) {
	allowAll := &fakeAuthorizer{enforceFn: func(identity.Role, string, string) (bool, error) { return true, nil }}
	adminOnly := &fakeAuthorizer{enforceFn: func(role identity.Role, resource, action string) (bool, error) {
		return role == identity.RoleAdmin, nil
	}}

	t.Run("allowed request gets header", func(t *testing.T) {
		counter := &fakeCounter{n: 3}
		caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleEmployee}
		r, _ := newPipeline(&fakeLoader{caller: caller}, counter, middleware.Authorize(allowAll, "notification", "read"))

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
			assert.Equal(t, "3", w.Header().Get(middleware.NotificationCountHeader))
		}
		assert.Equal(t, 2, counter.calls)
	})

	t.Run("denied request never counts", func(t *testing.T) {
		counter := &fakeCounter{n: 3}
		caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleEmployee}
		r, called := newPipeline(&fakeLoader{caller: caller}, counter, middleware.Authorize(adminOnly, "dashboard", "admin"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Empty(t, w.Header().Get(middleware.NotificationCountHeader))
		assert.Equal(t, 0, counter.calls)
		assert.False(t, *called)
	})

	t.Run("anonymous request has no header", func(t *testing.T) {
		counter := &fakeCounter{n: 3}
		r, _ := newPipeline(&fakeLoader{err: session.ErrSessionNotFound}, counter, middleware.Authorize(allowAll, "notification", "read"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Empty(t, w.Header().Get(middleware.NotificationCountHeader))
		assert.Equal(t, 0, counter.calls)
	})

	t.Run("count failure falls back to zero", func(t *testing.T) {
		counter := &fakeCounter{err: errors.New("db down")}
		caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleHR}
		r, called := newPipeline(&fakeLoader{caller: caller}, counter, middleware.Authorize(allowAll, "notification", "read"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, "0", w.Header().Get(middleware.NotificationCountHeader))
		assert.True(t, *called)
	})
}

func TestRequestID(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		reuse bool
	}{
		{"client token reused", "req-42.a_b", true},
		{"missing header minted", "", false},
		{"control characters replaced", "abc\r\nInjected: 1", false},
		{"overlong id replaced", strings.Repeat("a", 65), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newRouter(&fakeLoader{err: session.ErrSessionNotFound})
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.in != "" {
				req.Header.Set(middleware.RequestIDHeader, tc.in)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(middleware.RequestIDHeader)
			if tc.reuse {
				assert.Equal(t, tc.in, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	r, _ := newRouter(&fakeLoader{err: session.ErrSessionNotFound}, middleware.RateLimitByIP(0, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestIdempotency(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleAdmin}
	r, called := newRouter(&fakeLoader{caller: caller}, middleware.Idempotency(rdb))
	cacheKey := "idemp:/guarded:" + caller.UserID.String() + ":k1"

	t.Run("first request runs and is stored", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte("ok"), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/guarded", strings.NewReader("{}"))
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns cached body", func(t *testing.T) {
		*called = false
		mock.ExpectGet(cacheKey).SetVal("ok")

		req := httptest.NewRequest(http.MethodPost, "/guarded", strings.NewReader("{}"))
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "ok", w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.False(t, *called)
	})

	t.Run("in-flight duplicate conflicts", func(t *testing.T) {
		*called = false
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/guarded", strings.NewReader("{}"))
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, *called)
	})
}
