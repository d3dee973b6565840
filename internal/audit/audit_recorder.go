package audit

import (
	"context"
	"time"

	"go-hrms/internal/identity"
	"go-hrms/internal/shared/besteffort"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Action names written to the audit trail.
const (
	ActionLogin              = "Login"
	ActionLogout             = "Logout"
	ActionPasswordChanged    = "Password Changed"
	ActionEmployeeAdded      = "Employee Added"
	ActionEmployeeUpdated    = "Employee Updated"
	ActionEmployeeDeleted    = "Employee Deleted"
	ActionHRManagerAdded     = "HR Manager Added"
	ActionHRManagerDeleted   = "HR Manager Deleted"
	ActionContactUpdated     = "Employee Contact Updated"
	ActionProfileUpdated     = "Profile Updated"
	ActionDepartmentAdded    = "Department Added"
	ActionDepartmentUpdated  = "Department Updated"
	ActionDepartmentDeleted  = "Department Deleted"
	ActionSalaryUpdated      = "Salary Updated"
	ActionCheckIn            = "Check In"
	ActionCheckOut           = "Check Out"
	ActionManualAttendance   = "Manual Attendance"
	ActionLeaveApplied       = "Leave Applied"
	ActionLeaveAction        = "Leave Action"
	ActionPayrollGenerated   = "Payroll Generated"
	ActionDocumentUploaded   = "Document Uploaded"
	ActionDocumentDeleted    = "Document Deleted"
	ActionPerformanceReview  = "Performance Review Added"
)

//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	// Record appends an entry for caller. It never fails from the caller's
	// point of view and is a no-op for anonymous callers.
	Record(ctx context.Context, caller identity.Caller, action, details string)
}

type recorder struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &recorder{repo: repo, now: time.Now, logger: l}
}

func (r *recorder) Record(ctx context.Context, caller identity.Caller, action, details string) {
	if !caller.Authenticated() {
		return
	}

	entry := &AuditLog{
		ID:        uuid.New(),
		UserID:    caller.UserID,
		Action:    action,
		Details:   details,
		IPAddress: contextutil.GetClientIP(ctx),
		Timestamp: r.now().UTC(),
	}

	besteffort.Do(ctx, r.logger, "audit.record", func() error {
		return r.repo.Create(ctx, entry)
	})
}
