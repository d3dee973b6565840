package middleware

import (
	"go-hrms/internal/identity"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger builds the request-scoped logger and propagates the client
// IP into the standard context so services can audit without gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rid := contextutil.GetRequestID(ctx)
		caller := identity.FromGin(c)

		fields := []zap.Field{zap.String("request_id", rid)}
		if caller.Authenticated() {
			fields = append(fields,
				zap.String("user_id", caller.UserID.String()),
				zap.String("role", caller.Role.String()),
			)
		}
		reqLogger := logger.With(fields...)

		ctx = contextutil.WithClientIP(ctx, c.ClientIP())
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
