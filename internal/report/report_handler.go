package report

import (
	"fmt"
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

func (h *Handler) Types(c *gin.Context) {
	response.Success(c, http.StatusOK, TypesResponse{Types: Types}, nil)
}

func (h *Handler) Download(c *gin.Context) {
	rep, err := h.service.Export(c.Request.Context(), identity.FromGin(c), c.Param("type"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", rep.Filename))
	c.Data(http.StatusOK, "text/csv", rep.Content)
}
