package auth

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
	r.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
	r.GET("/logout", handler.Logout)
	r.GET("/me", middleware.Authorize(rbacService, rbac.ResAccount, rbac.ActRead), handler.Me)
}
