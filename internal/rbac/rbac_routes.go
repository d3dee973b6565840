package rbac

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, service Service) {
	r.GET("/me/permissions", middleware.Authorize(service, ResAccount, ActRead), h.MyPermissions)
}
