package leave

import (
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), identity.FromGin(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Leave application submitted successfully!", resp)
}

func (h *Handler) MyLeaves(c *gin.Context) {
	resp, err := h.service.MyLeaves(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), identity.FromGin(c), c.Query("status"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBind(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), identity.FromGin(c), c.Param("id"), req.Action)
	if err != nil {
		h.logger.Warn("leave decision rejected", zap.String("leave_id", c.Param("id")), zap.Error(err))
		writeServiceError(c, err)
		return
	}

	msg := "Leave approved successfully!"
	if req.Action == ActionReject {
		msg = "Leave rejected!"
	}
	response.Message(c, http.StatusOK, msg, resp)
}
