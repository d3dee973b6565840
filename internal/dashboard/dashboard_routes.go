package dashboard

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/admin/dashboard", middleware.Authorize(rbacService, rbac.ResDashboard, rbac.ActAdmin), h.Admin)
	r.GET("/hr/dashboard", middleware.Authorize(rbacService, rbac.ResDashboard, rbac.ActHR), h.HR)
	r.GET("/employee/dashboard", middleware.Authorize(rbacService, rbac.ResDashboard, rbac.ActEmployee), h.Employee)
}
