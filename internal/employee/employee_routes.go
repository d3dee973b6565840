package employee

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	read := middleware.Authorize(rbacService, rbac.ResEmployee, rbac.ActRead)
	manage := middleware.Authorize(rbacService, rbac.ResEmployee, rbac.ActManage)

	admin := r.Group("/admin")
	{
		admin.GET("/employees", manage, handler.List)
		admin.POST("/employees/add", manage, middleware.RateLimitByUser(1, 5), handler.Create)
		admin.POST("/employees/edit/:id", manage, handler.Update)
		admin.POST("/employees/delete/:id", manage, handler.Delete)

		hrManage := middleware.Authorize(rbacService, rbac.ResHRManager, rbac.ActManage)
		admin.GET("/hr-managers", hrManage, handler.ListHRManagers)
		admin.POST("/hr-managers/add", hrManage, middleware.RateLimitByUser(1, 5), handler.CreateHRManager)
		admin.POST("/hr-managers/delete/:id", hrManage, handler.DeleteHRManager)

		salary := middleware.Authorize(rbacService, rbac.ResSalary, rbac.ActManage)
		admin.GET("/salary", salary, handler.ListSalaries)
		admin.POST("/payroll/set-salary", salary, handler.UpdateSalaries)
	}

	hr := r.Group("/hr")
	{
		hr.GET("/employees", middleware.Authorize(rbacService, rbac.ResEmployee, rbac.ActUpdateContact), handler.List)
		hr.POST("/employees/update/:id", middleware.Authorize(rbacService, rbac.ResEmployee, rbac.ActUpdateContact), handler.UpdateContact)
	}

	r.GET("/employees/options", read, handler.Options)
	r.GET("/profile", middleware.Authorize(rbacService, rbac.ResProfile, rbac.ActRead), handler.Profile)
	r.POST("/profile/update", middleware.Authorize(rbacService, rbac.ResProfile, rbac.ActUpdate), handler.UpdateProfile)
}
