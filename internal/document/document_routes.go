package document

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	readOwn := middleware.Authorize(rbacService, rbac.ResDocument, rbac.ActReadOwn)
	r.GET("/documents", readOwn, h.Mine)
	r.GET("/documents/download/:id", readOwn, h.Download)
	r.GET("/admin/documents", middleware.Authorize(rbacService, rbac.ResDocument, rbac.ActReadAll), h.ListAll)
	r.POST("/documents/upload", middleware.Authorize(rbacService, rbac.ResDocument, rbac.ActCreate), h.Upload)

	manage := middleware.Authorize(rbacService, rbac.ResDocument, rbac.ActManage)
	r.POST("/documents/delete/:id", manage, h.Delete)
	r.DELETE("/documents/:id", manage, h.Delete)
}
