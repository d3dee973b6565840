package payroll

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	r.GET("/admin/payroll", middleware.Authorize(rbacService, rbac.ResPayroll, rbac.ActAdmin), handler.ListByMonth)
	r.GET("/hr/payroll", middleware.Authorize(rbacService, rbac.ResPayroll, rbac.ActHR), handler.ListByMonth)

	readOwn := middleware.Authorize(rbacService, rbac.ResPayroll, rbac.ActReadOwn)
	r.GET("/payroll/my-slips", readOwn, handler.MySlips)
	r.GET("/payroll/payslip/:id", readOwn, handler.DownloadPayslip)

	generate := middleware.Authorize(rbacService, rbac.ResPayroll, rbac.ActGenerate)
	if len(rdb) > 0 && rdb[0] != nil {
		r.POST("/admin/payroll/generate", generate, middleware.Idempotency(rdb[0]), handler.Generate)
	} else {
		r.POST("/admin/payroll/generate", generate, handler.Generate)
	}
}
