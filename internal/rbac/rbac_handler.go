package rbac

import (
	"net/http"

	"go-hrms/internal/identity"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type PermissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// MyPermissions lets the front end decide which navigation entries to show.
func (h *Handler) MyPermissions(c *gin.Context) {
	caller := identity.FromGin(c)

	perms, err := h.service.Permissions(caller.Role)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{
		Role:        caller.Role.String(),
		Permissions: perms,
	}, nil)
}
