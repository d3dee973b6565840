package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-hrms/internal/identity"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *apiError       `json:"error"`
}

type fakeLeaveService struct {
	leave.Service
	applyFn  func(ctx context.Context, caller identity.Caller, req leave.ApplyRequest) (leave.LeaveResponse, error)
	listFn   func(ctx context.Context, caller identity.Caller, status string) (leave.LeaveListResponse, error)
	decideFn func(ctx context.Context, caller identity.Caller, id, action string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, caller identity.Caller, req leave.ApplyRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, caller, req)
}
func (f *fakeLeaveService) List(ctx context.Context, caller identity.Caller, status string) (leave.LeaveListResponse, error) {
	return f.listFn(ctx, caller, status)
}
func (f *fakeLeaveService) Decide(ctx context.Context, caller identity.Caller, id, action string) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, caller, id, action)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		svc := &fakeLeaveService{applyFn: func(ctx context.Context, caller identity.Caller, req leave.ApplyRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, "annual", req.LeaveType)
			return leave.LeaveResponse{TotalDays: 3, Status: leave.StatusPending}, nil
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = postForm("/leave/apply", url.Values{
			"leave_type": {"annual"}, "start_date": {"2024-01-01"}, "end_date": {"2024-01-03"},
		})
		identity.SetGin(c, employee1)

		leave.NewHandler(svc).Apply(c)

		env := decode(t, w)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Leave application submitted successfully!", env.Message)
	})

	t.Run("missing leave type", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = postForm("/leave/apply", url.Values{"start_date": {"2024-01-01"}, "end_date": {"2024-01-03"}})
		identity.SetGin(c, employee1)

		leave.NewHandler(&fakeLeaveService{}).Apply(c)

		env := decode(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestLeaveHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeLeaveService{listFn: func(ctx context.Context, caller identity.Caller, status string) (leave.LeaveListResponse, error) {
		assert.Equal(t, "approved", status)
		return leave.LeaveListResponse{Status: status, Stats: leave.Stats{Approved: 2}}, nil
	}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/hr/leave-requests?status=approved", nil)
	identity.SetGin(c, hrSales)

	leave.NewHandler(svc).List(c)

	env := decode(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp leave.LeaveListResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, int64(2), resp.Stats.Approved)
}

func TestLeaveHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reject message", func(t *testing.T) {
		svc := &fakeLeaveService{decideFn: func(ctx context.Context, caller identity.Caller, id, action string) (leave.LeaveResponse, error) {
			assert.Equal(t, "abc", id)
			assert.Equal(t, leave.ActionReject, action)
			return leave.LeaveResponse{Status: leave.StatusRejected}, nil
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = postForm("/hr/leave/action/abc", url.Values{"action": {"reject"}})
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		identity.SetGin(c, hrSales)

		leave.NewHandler(svc).Decide(c)

		env := decode(t, w)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Leave rejected!", env.Message)
	})

	t.Run("already decided is a conflict", func(t *testing.T) {
		svc := &fakeLeaveService{decideFn: func(ctx context.Context, caller identity.Caller, id, action string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = postForm("/hr/leave/action/abc", url.Values{"action": {"approve"}})
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		identity.SetGin(c, hrSales)

		leave.NewHandler(svc).Decide(c)

		env := decode(t, w)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
