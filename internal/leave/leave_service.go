package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/audit"
	"go-hrms/internal/events"
	"go-hrms/internal/identity"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/notification"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const StatusFilterAll = "all"

type Service interface {
	Apply(ctx context.Context, caller identity.Caller, req ApplyRequest) (LeaveResponse, error)
	MyLeaves(ctx context.Context, caller identity.Caller) ([]LeaveResponse, error)
	List(ctx context.Context, caller identity.Caller, status string) (LeaveListResponse, error)
	Decide(ctx context.Context, caller identity.Caller, id, action string) (LeaveResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox notification.Outbox
	audit  audit.Recorder
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox notification.Outbox, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, audit: recorder, now: time.Now, logger: l}
}

func (s *service) Apply(ctx context.Context, caller identity.Caller, req ApplyRequest) (LeaveResponse, error) {
	if caller.EmployeeID == nil {
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeRecord
	}
	s.logger.Debug("apply leave requested",
		zap.String("employee_id", caller.EmployeeID.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: *caller.EmployeeID,
		LeaveType:  strings.TrimSpace(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("apply leave success", zap.String("leave_id", l.ID.String()))

	s.audit.Record(ctx, caller, audit.ActionLeaveApplied,
		fmt.Sprintf("Applied for %s leave from %s to %s", l.LeaveType, req.StartDate, req.EndDate))
	return mapToResponse(LeaveRow{LeaveRequest: *l}), nil
}

func (s *service) MyLeaves(ctx context.Context, caller identity.Caller) ([]LeaveResponse, error) {
	if caller.EmployeeID == nil {
		return []LeaveResponse{}, nil
	}
	leaves, err := s.repo.ListByEmployee(ctx, *caller.EmployeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(LeaveRow{LeaveRequest: l})
	}
	return resp, nil
}

// List returns requests in the caller's scope with the given status,
// pending when empty, plus counts over every status.
func (s *service) List(ctx context.Context, caller identity.Caller, status string) (LeaveListResponse, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = StatusPending
	}
	repoStatus := status
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	case StatusFilterAll:
		repoStatus = ""
	default:
		return LeaveListResponse{}, leaveerrors.ErrInvalidStatusFilter
	}

	filter := scope.ForResource(scope.KindLeave, caller)
	rows, err := s.repo.List(ctx, filter, repoStatus)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return LeaveListResponse{}, err
	}
	stats, err := s.repo.Stats(ctx, filter)
	if err != nil {
		return LeaveListResponse{}, err
	}

	resp := LeaveListResponse{Status: status, Requests: make([]LeaveResponse, len(rows)), Stats: stats}
	for i, r := range rows {
		resp.Requests[i] = mapToResponse(r)
	}
	return resp, nil
}

// Decide approves or rejects a pending request. The row is locked for the
// duration of the transaction; a request outside the caller's department
// reads as not found.
func (s *service) Decide(ctx context.Context, caller identity.Caller, id, action string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	var target string
	switch action {
	case ActionApprove:
		target = StatusApproved
	case ActionReject:
		target = StatusRejected
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidAction
	}
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", caller.UserID.String()),
		zap.String("action", action),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(tx.Error))
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindForUpdate(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !scope.ForResource(scope.KindLeave, caller).AllowsEmployee(row.EmployeeID, row.DepartmentID) {
		s.logger.Warn("decide leave outside scope", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if row.Status != StatusPending {
		s.logger.Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", row.Status),
			zap.String("to_status", target),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	if err := qtx.Decide(ctx, leaveID, target, caller.UserID, now); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if row.UserID != nil {
		err := s.outbox.Enqueue(ctx, tx, notification.Request{
			UserID: *row.UserID,
			Message: fmt.Sprintf("Your leave request from %s to %s has been %s",
				row.StartDate.Format(time.DateOnly), row.EndDate.Format(time.DateOnly), target),
			AggregateType: events.AggregateLeave,
			AggregateID:   leaveID.String(),
		})
		if err != nil {
			s.logger.Error("decide leave enqueue notification failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success", zap.String("leave_id", id), zap.String("status", target))

	verb := "Approved"
	if target == StatusRejected {
		verb = "Rejected"
	}
	s.audit.Record(ctx, caller, audit.ActionLeaveAction, fmt.Sprintf("%s leave request %s", verb, id))

	row.Status = target
	row.ApprovedBy = &caller.UserID
	row.ApprovedDate = &now
	return mapToResponse(*row), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(r LeaveRow) LeaveResponse {
	resp := LeaveResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID.String(),
		EmployeeName: r.EmployeeName,
		Position:     r.Position,
		Department:   r.Department,
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate.Format(time.DateOnly),
		EndDate:      r.EndDate.Format(time.DateOnly),
		TotalDays:    r.TotalDays(),
		Reason:       r.Reason,
		Status:       r.Status,
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedDate != nil {
		v := r.ApprovedDate.Format(time.RFC3339)
		resp.ApprovedDate = &v
	}
	return resp
}
