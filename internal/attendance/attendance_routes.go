package attendance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	self := middleware.Authorize(rbacService, rbac.ResAttendance, rbac.ActSelf)
	r.GET("/attendance/mark", self, h.Mine)
	r.POST("/attendance/mark", self, middleware.RateLimitByUser(1, 3), h.Mark)

	r.GET("/admin/attendance", middleware.Authorize(rbacService, rbac.ResAttendance, rbac.ActAdmin), h.ListByDate)
	r.GET("/hr/attendance", middleware.Authorize(rbacService, rbac.ResAttendance, rbac.ActHR), h.ListByDate)

	manual := middleware.Authorize(rbacService, rbac.ResAttendance, rbac.ActManual)
	r.GET("/hr/attendance/manual", manual, h.ManualCandidates)
	r.POST("/hr/attendance/manual", manual, h.Manual)
}
