package audit

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.GET("/admin/audit-logs", middleware.Authorize(rbacService, rbac.ResAudit, rbac.ActRead), handler.List)
}
