package employee

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go-hrms/internal/identity"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const salaryFieldPrefix = "salary_"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// List serves both the admin and the HR employee pages; the service scopes
// rows by caller. Supports q, sort_by, sort_dir, page and page_size.
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, resp)
}

func (h *Handler) ListHRManagers(c *gin.Context) {
	resp, err := h.service.ListHRManagers(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, resp)
}

func (h *Handler) ListSalaries(c *gin.Context) {
	resp, err := h.service.ListSalaries(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeList(c, resp)
}

func (h *Handler) writeList(c *gin.Context, resp []EmployeeResponse) {
	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Email), q) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "name")))
	desc := strings.EqualFold(c.Query("sort_dir"), "desc")
	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "email":
			less = strings.ToLower(resp[i].Email) < strings.ToLower(resp[j].Email)
		case "department":
			less = resp[i].DepartmentName < resp[j].DepartmentName
		default:
			less = strings.ToLower(resp[i].Name) < strings.ToLower(resp[j].Name)
		}
		if desc {
			return !less
		}
		return less
	})

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) Options(c *gin.Context) {
	resp, err := h.service.Options(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), identity.FromGin(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Employee added successfully!", resp)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), identity.FromGin(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Employee updated successfully!", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity.FromGin(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Employee deleted successfully!", gin.H{"deleted": true})
}

func (h *Handler) CreateHRManager(c *gin.Context) {
	var req CreateHRManagerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateHRManager(c.Request.Context(), identity.FromGin(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "HR Manager added successfully!", resp)
}

func (h *Handler) DeleteHRManager(c *gin.Context) {
	if err := h.service.DeleteHRManager(c.Request.Context(), identity.FromGin(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "HR Manager deleted successfully!", gin.H{"deleted": true})
}

func (h *Handler) UpdateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.UpdateContact(c.Request.Context(), identity.FromGin(c), c.Param("id"), req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Employee details updated successfully!", nil)
}

func (h *Handler) Profile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context(), identity.FromGin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), identity.FromGin(c), req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Profile updated successfully!", nil)
}

// UpdateSalaries accepts either a JSON {"salaries": {...}} body or the form
// fields salary_<employee_id>=<amount>.
func (h *Handler) UpdateSalaries(c *gin.Context) {
	salaries := map[string]string{}

	if c.ContentType() == gin.MIMEJSON {
		var req SalaryBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		salaries = req.Salaries
	} else {
		if err := c.Request.ParseForm(); err != nil {
			h.writeServiceError(c, apperror.ErrInvalidInput)
			return
		}
		for key, values := range c.Request.PostForm {
			if !strings.HasPrefix(key, salaryFieldPrefix) || len(values) == 0 {
				continue
			}
			salaries[strings.TrimPrefix(key, salaryFieldPrefix)] = values[0]
		}
	}

	updated, err := h.service.UpdateSalaries(c.Request.Context(), identity.FromGin(c), salaries)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	msg := "No salary changes were made."
	if updated > 0 {
		msg = fmt.Sprintf("Successfully updated salaries for %d employees!", updated)
	}
	response.Message(c, http.StatusOK, msg, SalaryBatchResponse{Updated: updated})
}
