package document

import (
	"errors"
	"fmt"
	"net/http"

	documenterrors "go-hrms/internal/document/errors"
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
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mine(c *gin.Context) {
	h.list(c, false)
}

func (h *Handler) ListAll(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, all bool) {
	resp, err := h.service.List(c.Request.Context(), identity.FromGin(c), all)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(c, documenterrors.ErrFileTooLarge)
			return
		}
		writeServiceError(c, documenterrors.ErrNoFile)
		return
	}

	var req UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error("open multipart file failed", zap.Error(err))
		writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.Upload(c.Request.Context(), identity.FromGin(c), UploadInput{
		UploadRequest: req,
		Filename:      fh.Filename,
		File:          f,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Document uploaded successfully!", resp)
}

func (h *Handler) Download(c *gin.Context) {
	file, err := h.service.Open(c.Request.Context(), identity.FromGin(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer file.Content.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", file.Content, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, file.Filename),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity.FromGin(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Document deleted successfully!", nil)
}
