package middleware

import (
	"context"
	"strconv"

	"go-hrms/internal/identity"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	NotificationCountHeader = "X-Notification-Count"

	unreadCounterKey = "middleware.unread_counter"
)

// UnreadCounter is satisfied by notification.Service.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationCount registers counter for the request. The count itself is
// computed by Authorize once the caller passes the guard, so a denied
// request never reads notifications. The value is never cached.
func NotificationCount(counter UnreadCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(unreadCounterKey, counter)
		c.Next()
	}
}

func writeUnreadCount(c *gin.Context, caller identity.Caller) {
	v, ok := c.Get(unreadCounterKey)
	if !ok {
		return
	}
	counter, ok := v.(UnreadCounter)
	if !ok {
		return
	}

	n, err := counter.UnreadCount(c.Request.Context(), caller.UserID)
	if err != nil {
		contextutil.GetLogger(c.Request.Context(), zap.L()).Warn("unread count failed", zap.Error(err))
		n = 0
	}
	c.Header(NotificationCountHeader, strconv.FormatInt(n, 10))
}
