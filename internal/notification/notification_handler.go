package notification

import (
	"net/http"

	"go-hrms/internal/identity"
	"go-hrms/internal/middleware"
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

func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	// Everything listed is now read.
	c.Header(middleware.NotificationCountHeader, "0")
	response.Success(c, http.StatusOK, rows, nil)
}
