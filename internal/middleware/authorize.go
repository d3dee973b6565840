package middleware

import (
	"net/http"

	"go-hrms/internal/identity"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const LoginPath = "/login"

// Authorizer is satisfied by rbac.Service.
type Authorizer interface {
	Enforce(role identity.Role, resource, action string) (bool, error)
}

// Authorize redirects to the login page unless a session exists and its
// role is granted resource:action. The guarded handler never runs on deny,
// and nothing is read on its behalf: the unread notification count is only
// computed after the policy allows the request.
func Authorize(service Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := identity.FromGin(c)
		if !caller.Authenticated() {
			redirectToLogin(c)
			return
		}

		allowed, err := service.Enforce(caller.Role, resource, action)
		if err != nil || !allowed {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Info("authorization denied",
				zap.String("role", caller.Role.String()),
				zap.String("required", resource+":"+action),
				zap.Error(err),
			)
			redirectToLogin(c)
			return
		}

		writeUnreadCount(c, caller)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}
