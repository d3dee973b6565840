package performance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	readAll := middleware.Authorize(rbacService, rbac.ResPerformance, rbac.ActReadAll)
	r.GET("/admin/performance", readAll, h.List)
	r.GET("/hr/performance", readAll, h.List)
	r.GET("/employee/performance", middleware.Authorize(rbacService, rbac.ResPerformance, rbac.ActReadOwn), h.Mine)
	r.POST("/performance/add", middleware.Authorize(rbacService, rbac.ResPerformance, rbac.ActCreate), h.Add)
}
