package auth

import (
	"net/http"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/identity"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sessions is satisfied by session.Manager.
type Sessions interface {
	Start(c *gin.Context, caller identity.Caller) error
	End(c *gin.Context)
}

type Handler struct {
	service  Service
	sessions Sessions
	logger   *zap.Logger
}

func NewHandler(service Service, sessions Sessions, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, sessions: sessions, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	caller, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.sessions.Start(c, caller); err != nil {
		h.logger.Error("session start failed", zap.Error(err))
		h.writeServiceError(c, autherrors.ErrSessionFailed)
		return
	}

	response.Message(c, http.StatusOK, "Login successful!", LoginResponse{
		User:     Me(caller),
		Redirect: DashboardPath(caller.Role),
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Registration successful! Please login.", resp)
}

func (h *Handler) Logout(c *gin.Context) {
	caller := identity.FromGin(c)
	if caller.Authenticated() {
		h.service.Logout(c.Request.Context(), caller)
	}
	h.sessions.End(c)
	response.Message(c, http.StatusOK, "Logged out successfully!", nil)
}

func (h *Handler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, Me(identity.FromGin(c)), nil)
}
