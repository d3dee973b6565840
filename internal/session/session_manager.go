package session

import (
	"net/http"
	"time"

	"go-hrms/internal/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager ties the Redis store to the signed browser cookie.
type Manager struct {
	store  Store
	signer *Signer
	opts   Options
	logger *zap.Logger
}

func NewManager(store Store, signer *Signer, opts Options, logger ...*zap.Logger) *Manager {
	l := zap.L().Named("session.manager")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.manager")
	}
	if opts.CookieName == "" {
		opts.CookieName = "hrms_session"
	}
	return &Manager{store: store, signer: signer, opts: opts, logger: l}
}

// Start persists caller and sets the session cookie.
func (m *Manager) Start(c *gin.Context, caller identity.Caller) error {
	sid, err := m.store.Create(c.Request.Context(), caller)
	if err != nil {
		return err
	}
	token, err := m.signer.Sign(sid)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, token, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
	return nil
}

// Load resolves the cookie to a Caller. Any failure yields the anonymous
// caller and a non-nil error.
func (m *Manager) Load(c *gin.Context) (identity.Caller, error) {
	token, err := c.Cookie(m.opts.CookieName)
	if err != nil || token == "" {
		return identity.Caller{}, ErrSessionNotFound
	}
	sid, err := m.signer.Parse(token)
	if err != nil {
		return identity.Caller{}, err
	}
	return m.store.Get(c.Request.Context(), sid)
}

// End deletes the server-side session and expires the cookie.
func (m *Manager) End(c *gin.Context) {
	if token, err := c.Cookie(m.opts.CookieName); err == nil && token != "" {
		if sid, err := m.signer.Parse(token); err == nil {
			if err := m.store.Delete(c.Request.Context(), sid); err != nil {
				m.logger.Warn("delete session failed", zap.Error(err))
			}
		}
	}
	c.SetCookie(m.opts.CookieName, "", -1, "/", "", m.opts.Secure, true)
}
