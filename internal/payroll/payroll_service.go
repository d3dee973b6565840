package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hrms/internal/audit"
	"go-hrms/internal/identity"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/scope"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const monthLayout = "2006-01"

type Service interface {
	ListByMonth(ctx context.Context, caller identity.Caller, month string) (MonthResponse, error)
	MySlips(ctx context.Context, caller identity.Caller) ([]PayrollResponse, error)
	Payslip(ctx context.Context, caller identity.Caller, id string) (Payslip, error)
	Generate(ctx context.Context, caller identity.Caller, month string) (GenerateResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	audit  audit.Recorder
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, audit: recorder, now: time.Now, logger: l}
}

// NewServiceWithClock is NewService with a fixed clock.
func NewServiceWithClock(db *gorm.DB, repo Repository, recorder audit.Recorder, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(db, repo, recorder, logger...).(*service)
	s.now = now
	return s
}

func (s *service) parseMonth(raw string) (time.Time, error) {
	if raw == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(monthLayout, raw)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidMonth
	}
	return t, nil
}

func (s *service) ListByMonth(ctx context.Context, caller identity.Caller, month string) (MonthResponse, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return MonthResponse{}, err
	}

	rows, err := s.repo.ListByMonth(ctx, m, scope.ForResource(scope.KindPayroll, caller))
	if err != nil {
		s.logger.Error("list payroll by month failed", zap.Error(err))
		return MonthResponse{}, err
	}
	return MonthResponse{Month: m.Format(monthLayout), Slips: mapToListResponse(rows)}, nil
}

func (s *service) MySlips(ctx context.Context, caller identity.Caller) ([]PayrollResponse, error) {
	if caller.EmployeeID == nil {
		return []PayrollResponse{}, nil
	}
	rows, err := s.repo.ListByEmployee(ctx, *caller.EmployeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// Payslip renders one slip as PDF. Slips outside the caller's scope read as
// not found.
func (s *service) Payslip(ctx context.Context, caller identity.Caller, id string) (Payslip, error) {
	payrollID, err := uuid.Parse(id)
	if err != nil {
		return Payslip{}, payrollerrors.ErrInvalidPayrollID
	}

	row, err := s.repo.FindRow(ctx, payrollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payslip{}, payrollerrors.ErrPayrollNotFound
		}
		return Payslip{}, err
	}
	if !scope.ForResource(scope.KindPayroll, caller).AllowsEmployee(row.EmployeeID, row.DepartmentID) {
		return Payslip{}, payrollerrors.ErrPayrollNotFound
	}

	content, err := renderPayslipPDF(*row, s.now())
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return Payslip{}, payrollerrors.ErrPayslipRenderFailed
	}
	return Payslip{
		Filename: fmt.Sprintf("payslip_%s.pdf", row.MonthYear.Format(monthLayout)),
		Content:  content,
	}, nil
}

// Generate creates a processed slip for every staff employee at their
// current salary. Months that already have a slip are left untouched, so
// running it twice is harmless.
func (s *service) Generate(ctx context.Context, caller identity.Caller, month string) (GenerateResponse, error) {
	m, err := s.parseMonth(month)
	if err != nil {
		return GenerateResponse{}, err
	}
	s.logger.Debug("generate payroll requested", zap.String("month", m.Format(monthLayout)))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return GenerateResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	sources, err := qtx.SalarySources(ctx)
	if err != nil {
		s.logger.Error("generate payroll load salaries failed", zap.Error(err))
		return GenerateResponse{}, err
	}

	rows := make([]Payroll, len(sources))
	for i, src := range sources {
		rows[i] = Payroll{
			ID:          uuid.New(),
			EmployeeID:  src.EmployeeID,
			MonthYear:   m,
			BasicSalary: src.Salary,
			NetSalary:   src.Salary,
			Status:      StatusProcessed,
		}
	}
	created, err := qtx.CreateMissing(ctx, rows)
	if err != nil {
		s.logger.Error("generate payroll insert failed", zap.Error(err))
		return GenerateResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return GenerateResponse{}, err
	}

	resp := GenerateResponse{
		Month:   m.Format(monthLayout),
		Created: created,
		Skipped: int64(len(rows)) - created,
	}
	s.logger.Info("generate payroll success",
		zap.String("month", resp.Month),
		zap.Int64("created", resp.Created),
		zap.Int64("skipped", resp.Skipped),
	)
	s.audit.Record(ctx, caller, audit.ActionPayrollGenerated,
		fmt.Sprintf("Generated payroll for %s: %d slips", resp.Month, resp.Created))
	return resp, nil
}

func mapToResponse(r PayrollRow) PayrollResponse {
	return PayrollResponse{
		ID:          r.ID.String(),
		EmployeeID:  r.EmployeeID.String(),
		Name:        r.Name,
		Position:    r.Position,
		Department:  r.Department,
		Month:       r.MonthYear.Format(monthLayout),
		BasicSalary: r.BasicSalary.StringFixed(2),
		NetSalary:   r.NetSalary.StringFixed(2),
		Status:      r.Status,
	}
}

func mapToListResponse(rows []PayrollRow) []PayrollResponse {
	resp := make([]PayrollResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
