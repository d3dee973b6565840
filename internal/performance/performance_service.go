package performance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/audit"
	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/identity"
	"go-hrms/internal/notification"
	performanceerrors "go-hrms/internal/performance/errors"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeFinder is satisfied by employee.Repository.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

type Service interface {
	Add(ctx context.Context, caller identity.Caller, req AddReviewRequest) (ReviewResponse, error)
	List(ctx context.Context, caller identity.Caller) (ReviewListResponse, error)
	Mine(ctx context.Context, caller identity.Caller) ([]ReviewResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees EmployeeFinder
	outbox    notification.Outbox
	audit     audit.Recorder
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees EmployeeFinder,
	outbox notification.Outbox,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{db: db, repo: repo, employees: employees, outbox: outbox, audit: recorder, logger: l}
}

// Add records a review written by the caller. HR may only review employees
// of its own department; anyone else reads as not found.
func (s *service) Add(ctx context.Context, caller identity.Caller, req AddReviewRequest) (ReviewResponse, error) {
	employeeID, err := uuid.Parse(strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return ReviewResponse{}, performanceerrors.ErrInvalidEmployeeID
	}
	reviewDate, err := time.Parse(time.DateOnly, strings.TrimSpace(req.ReviewDate))
	if err != nil {
		return ReviewResponse{}, performanceerrors.ErrInvalidReviewDate
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return ReviewResponse{}, performanceerrors.ErrInvalidRating
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, performanceerrors.ErrEmployeeNotFound
		}
		return ReviewResponse{}, err
	}
	if !scope.ForResource(scope.KindPerformance, caller).AllowsEmployee(emp.ID, emp.DepartmentID) {
		s.logger.Warn("add review outside scope", zap.String("employee_id", emp.ID.String()))
		return ReviewResponse{}, performanceerrors.ErrEmployeeNotFound
	}

	review := &PerformanceReview{
		ID:                 uuid.New(),
		EmployeeID:         emp.ID,
		ReviewerID:         caller.UserID,
		ReviewDate:         reviewDate,
		Rating:             req.Rating,
		Comments:           strings.TrimSpace(req.Comments),
		PromotionSuggested: req.PromotionSuggested,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("add review begin tx failed", zap.Error(tx.Error))
		return ReviewResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, review); err != nil {
		s.logger.Error("add review persist failed", zap.Error(err))
		return ReviewResponse{}, err
	}
	if emp.UserID != nil {
		err := s.outbox.Enqueue(ctx, tx, notification.Request{
			UserID:        *emp.UserID,
			Message:       fmt.Sprintf("A new performance review (rating %d/5) has been added for %s", review.Rating, req.ReviewDate),
			AggregateType: events.AggregatePerformance,
			AggregateID:   review.ID.String(),
		})
		if err != nil {
			s.logger.Error("add review enqueue notification failed", zap.Error(err))
			return ReviewResponse{}, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		s.logger.Error("add review commit failed", zap.Error(err))
		return ReviewResponse{}, err
	}
	s.logger.Info("add review success", zap.String("review_id", review.ID.String()))

	s.audit.Record(ctx, caller, audit.ActionPerformanceReview,
		fmt.Sprintf("Added review for employee %s", emp.ID))
	return mapToResponse(ReviewRow{PerformanceReview: *review, EmployeeName: emp.Name, ReviewerName: caller.Name}), nil
}

// List returns reviews in the caller's scope with the employees that may be
// reviewed.
func (s *service) List(ctx context.Context, caller identity.Caller) (ReviewListResponse, error) {
	filter := scope.ForResource(scope.KindPerformance, caller)
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list reviews failed", zap.Error(err))
		return ReviewListResponse{}, err
	}
	options, err := s.repo.EmployeeOptions(ctx, filter)
	if err != nil {
		return ReviewListResponse{}, err
	}
	return ReviewListResponse{Reviews: mapRows(rows), Employees: options}, nil
}

func (s *service) Mine(ctx context.Context, caller identity.Caller) ([]ReviewResponse, error) {
	if caller.EmployeeID == nil {
		return []ReviewResponse{}, nil
	}
	rows, err := s.repo.ListByEmployee(ctx, *caller.EmployeeID)
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

func mapRows(rows []ReviewRow) []ReviewResponse {
	resp := make([]ReviewResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func mapToResponse(r ReviewRow) ReviewResponse {
	return ReviewResponse{
		ID:                 r.ID.String(),
		EmployeeID:         r.EmployeeID.String(),
		EmployeeName:       r.EmployeeName,
		DepartmentName:     r.DepartmentName,
		ReviewerID:         r.ReviewerID.String(),
		ReviewerName:       r.ReviewerName,
		ReviewDate:         r.ReviewDate.Format(time.DateOnly),
		Rating:             r.Rating,
		Comments:           r.Comments,
		PromotionSuggested: r.PromotionSuggested,
	}
}
