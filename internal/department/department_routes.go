package department

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	manage := middleware.Authorize(rbacService, rbac.ResDepartment, rbac.ActManage)

	admin := r.Group("/admin/departments")
	{
		admin.GET("", manage, handler.GetAll)
		admin.POST("/add", manage, handler.Create)
		admin.POST("/edit/:id", manage, handler.Update)
		admin.POST("/delete/:id", manage, handler.Delete)
	}

	r.GET("/departments/options", middleware.Authorize(rbacService, rbac.ResEmployee, rbac.ActRead), handler.Options)
}
