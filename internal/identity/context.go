package identity

import (
	"context"

	"github.com/gin-gonic/gin"
)

// GinKey is where the session middleware stores the Caller on gin.Context.
const GinKey = "identity.caller"

type ctxKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func FromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok && c.Authenticated()
}

// FromGin returns the caller attached by the session middleware, or the
// anonymous zero value.
func FromGin(c *gin.Context) Caller {
	if v, ok := c.Get(GinKey); ok {
		if caller, ok := v.(Caller); ok {
			return caller
		}
	}
	return Caller{}
}

func SetGin(c *gin.Context, caller Caller) {
	c.Set(GinKey, caller)
	c.Request = c.Request.WithContext(WithCaller(c.Request.Context(), caller))
}
