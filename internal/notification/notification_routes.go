package notification

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/notifications", middleware.Authorize(rbacService, rbac.ResNotification, rbac.ActRead), h.List)
}
