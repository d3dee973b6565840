package user

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.POST("/change-password", middleware.Authorize(rbacService, rbac.ResAccount, rbac.ActChangePass), handler.ChangePassword)
	r.GET("/admin/users/options", middleware.Authorize(rbacService, rbac.ResDocument, rbac.ActReadAll), handler.Options)
}
