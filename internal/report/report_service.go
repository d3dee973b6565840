package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"go-hrms/internal/identity"
	reporterrors "go-hrms/internal/report/errors"
	"go-hrms/internal/scope"

	"go.uber.org/zap"
)

// rowLimit caps the attendance and payroll exports.
const rowLimit = 1000

var (
	employeeHeader   = []string{"Name", "Email", "Position", "Department", "Salary", "Joining Date"}
	attendanceHeader = []string{"Name", "Date", "Check In", "Check Out", "Status"}
	payrollHeader    = []string{"Name", "Month", "Basic Salary", "Net Salary", "Status"}
)

type Service interface {
	Export(ctx context.Context, caller identity.Caller, reportType string) (Report, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(repo, logger...).(*service)
	s.now = now
	return s
}

// Export renders the named report over the caller's scope as CSV.
func (s *service) Export(ctx context.Context, caller identity.Caller, reportType string) (Report, error) {
	filter := scope.ForResource(scope.KindReport, caller)

	var records [][]string
	switch reportType {
	case TypeEmployees:
		rows, err := s.repo.Employees(ctx, filter)
		if err != nil {
			return Report{}, err
		}
		records = append(records, employeeHeader)
		for _, r := range rows {
			records = append(records, []string{
				r.Name, r.Email, r.Position, deref(r.Department), r.Salary.StringFixed(2), date(r.JoiningDate),
			})
		}
	case TypeAttendance:
		rows, err := s.repo.Attendance(ctx, filter, rowLimit)
		if err != nil {
			return Report{}, err
		}
		records = append(records, attendanceHeader)
		for _, r := range rows {
			records = append(records, []string{
				r.Name, r.Date.Format(time.DateOnly), clock(r.CheckIn), clock(r.CheckOut), r.Status,
			})
		}
	case TypePayroll:
		rows, err := s.repo.Payroll(ctx, filter, rowLimit)
		if err != nil {
			return Report{}, err
		}
		records = append(records, payrollHeader)
		for _, r := range rows {
			records = append(records, []string{
				r.Name, r.MonthYear.Format("2006-01"), r.BasicSalary.StringFixed(2), r.NetSalary.StringFixed(2), r.Status,
			})
		}
	default:
		return Report{}, reporterrors.ErrUnknownReportType
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		s.logger.Error("render report failed", zap.String("type", reportType), zap.Error(err))
		return Report{}, err
	}
	s.logger.Info("report exported",
		zap.String("type", reportType),
		zap.String("user_id", caller.UserID.String()),
		zap.Int("rows", len(records)-1),
	)

	return Report{
		Filename: fmt.Sprintf("%s_report_%s.csv", reportType, s.now().Format(time.DateOnly)),
		Content:  buf.Bytes(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.TimeOnly)
}
