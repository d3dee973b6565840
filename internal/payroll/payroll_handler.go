package payroll

import (
	"fmt"
	"net/http"

	"go-hrms/internal/identity"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListByMonth(c *gin.Context) {
	resp, err := h.service.ListByMonth(c.Request.Context(), identity.FromGin(c), c.Query("month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MySlips(c *gin.Context) {
	resp, err := h.service.MySlips(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	slip, err := h.service.Payslip(c.Request.Context(), identity.FromGin(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, slip.Filename))
	c.Data(http.StatusOK, "application/pdf", slip.Content)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), identity.FromGin(c), req.Month)
	if err != nil {
		h.logger.Warn("payroll generation failed", zap.String("month", req.Month), zap.Error(err))
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK,
		fmt.Sprintf("Generated %d payroll slips for %s.", resp.Created, resp.Month), resp)
}
