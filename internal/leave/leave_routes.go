package leave

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.POST("/leave/apply", middleware.Authorize(rbacService, rbac.ResLeave, rbac.ActApply), h.Apply)
	r.GET("/leave/my-leaves", middleware.Authorize(rbacService, rbac.ResLeave, rbac.ActReadOwn), h.MyLeaves)

	admin := middleware.Authorize(rbacService, rbac.ResLeave, rbac.ActAdmin)
	r.GET("/admin/leave-requests", admin, h.List)
	r.POST("/admin/leave/action/:id", admin, h.Decide)

	hr := middleware.Authorize(rbacService, rbac.ResLeave, rbac.ActHR)
	r.GET("/hr/leave-requests", hr, h.List)
	r.POST("/hr/leave/action/:id", hr, h.Decide)
}
