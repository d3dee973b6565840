package report

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/admin/reports", middleware.Authorize(rbacService, rbac.ResReport, rbac.ActAdmin), h.Types)
	r.GET("/hr/reports", middleware.Authorize(rbacService, rbac.ResReport, rbac.ActHR), h.Types)
	r.GET("/download/report/:type", middleware.Authorize(rbacService, rbac.ResReport, rbac.ActExport), h.Download)
}
