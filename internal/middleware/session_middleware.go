package middleware

import (
	"errors"

	"go-hrms/internal/identity"
	"go-hrms/internal/session"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionLoader resolves the request cookie to a caller.
type SessionLoader interface {
	Load(c *gin.Context) (identity.Caller, error)
}

// LoadSession attaches the caller to the request when a valid session
// exists. Anonymous requests pass through untouched; routes that need a
// session are protected by Authorize.
func LoadSession(loader SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := loader.Load(c)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) && !errors.Is(err, session.ErrInvalidToken) {
				contextutil.GetLogger(c.Request.Context(), zap.L()).Warn("load session failed", zap.Error(err))
			}
			c.Next()
			return
		}

		identity.SetGin(c, caller)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), caller.UserID.String()))
		c.Next()
	}
}
