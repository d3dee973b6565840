package attendance

import (
	"net/http"

	attendanceerrors "go-hrms/internal/attendance/errors"
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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Mark handles action=check_in and action=check_out. Warnings still answer
// 200 with ok=true; the outcome carries the warning flag.
func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBind(&req); err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidAction)
		return
	}

	caller := identity.FromGin(c)
	var (
		out Outcome
		err error
	)
	switch req.Action {
	case "check_in":
		out, err = h.service.CheckIn(c.Request.Context(), caller)
	case "check_out":
		out, err = h.service.CheckOut(c.Request.Context(), caller)
	default:
		err = attendanceerrors.ErrInvalidAction
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, out.Message, out)
}

func (h *Handler) Mine(c *gin.Context) {
	resp, err := h.service.Mine(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByDate(c *gin.Context) {
	resp, err := h.service.ListByDate(c.Request.Context(), identity.FromGin(c), c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ManualCandidates(c *gin.Context) {
	resp, err := h.service.ManualCandidates(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Manual(c *gin.Context) {
	var req ManualRequest
	if err := c.ShouldBind(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Manual(c.Request.Context(), identity.FromGin(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Attendance updated successfully!", resp)
}
