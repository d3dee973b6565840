package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/audit"
	"go-hrms/internal/employee"
	"go-hrms/internal/identity"
	"go-hrms/internal/scope"
	"go-hrms/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MsgCheckedIn         = "Checked in successfully!"
	MsgCheckedOut        = "Checked out successfully!"
	MsgAlreadyCheckedIn  = "Already checked in today!"
	MsgAlreadyCheckedOut = "Already checked out today!"
	MsgNotCheckedIn      = "You have not checked in today!"

	historyLimit = 10
)

// EmployeeFinder is satisfied by employee.Repository.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

type Service interface {
	CheckIn(ctx context.Context, caller identity.Caller) (Outcome, error)
	CheckOut(ctx context.Context, caller identity.Caller) (Outcome, error)
	Manual(ctx context.Context, caller identity.Caller, req ManualRequest) (AttendanceResponse, error)
	ManualCandidates(ctx context.Context, caller identity.Caller) ([]EmployeeOption, error)
	ListByDate(ctx context.Context, caller identity.Caller, date string) (DailyReport, error)
	Mine(ctx context.Context, caller identity.Caller) (MyAttendanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees EmployeeFinder
	audit     audit.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, employees EmployeeFinder, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, employees: employees, audit: recorder, now: time.Now, logger: l}
}

// NewServiceWithClock is NewService with a fixed clock.
func NewServiceWithClock(db *gorm.DB, repo Repository, employees EmployeeFinder, recorder audit.Recorder, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(db, repo, employees, recorder, logger...).(*service)
	s.now = now
	return s
}

// CheckIn inserts today's row when none exists. A second check-in, including
// one that loses an insert race on the unique index, is a warning.
func (s *service) CheckIn(ctx context.Context, caller identity.Caller) (Outcome, error) {
	if caller.EmployeeID == nil {
		return Outcome{}, attendanceerrors.ErrNoEmployeeRecord
	}
	now := s.now()
	today := dateOf(now)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Outcome{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByEmployeeAndDate(ctx, *caller.EmployeeID, today)
	if err == nil {
		resp := mapToResponse(*existing)
		return Outcome{Message: MsgAlreadyCheckedIn, Warning: true, Record: &resp}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check in lookup failed", zap.Error(err))
		return Outcome{}, err
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: *caller.EmployeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     StatusPresent,
	}
	if err := qtx.Create(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			s.logger.Info("check in lost race", zap.String("employee_id", caller.EmployeeID.String()))
			return Outcome{Message: MsgAlreadyCheckedIn, Warning: true}, nil
		}
		return Outcome{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return Outcome{}, err
	}

	s.audit.Record(ctx, caller, audit.ActionCheckIn, "Checked in at "+now.Format(time.TimeOnly))
	resp := mapToResponse(*row)
	return Outcome{Message: MsgCheckedIn, Record: &resp}, nil
}

func (s *service) CheckOut(ctx context.Context, caller identity.Caller) (Outcome, error) {
	if caller.EmployeeID == nil {
		return Outcome{}, attendanceerrors.ErrNoEmployeeRecord
	}
	now := s.now()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Outcome{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByEmployeeAndDate(ctx, *caller.EmployeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Outcome{Message: MsgNotCheckedIn, Warning: true}, nil
		}
		return Outcome{}, err
	}
	if row.CheckOut != nil {
		resp := mapToResponse(*row)
		return Outcome{Message: MsgAlreadyCheckedOut, Warning: true, Record: &resp}, nil
	}

	if err := qtx.SetCheckOut(ctx, row.ID, now); err != nil {
		return Outcome{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return Outcome{}, err
	}

	row.CheckOut = &now
	s.audit.Record(ctx, caller, audit.ActionCheckOut, "Checked out at "+now.Format(time.TimeOnly))
	resp := mapToResponse(*row)
	return Outcome{Message: MsgCheckedOut, Record: &resp}, nil
}

// Manual upserts any status on any date for an employee inside the caller's
// scope.
func (s *service) Manual(ctx context.Context, caller identity.Caller, req ManualRequest) (AttendanceResponse, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	status := Status(req.Status)
	if !status.Valid() {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}
	checkIn, err := clockOn(date, req.CheckIn)
	if err != nil {
		return AttendanceResponse{}, err
	}
	checkOut, err := clockOn(date, req.CheckOut)
	if err != nil {
		return AttendanceResponse{}, err
	}

	e, err := s.employees.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}
	if !scope.ForResource(scope.KindAttendance, caller).AllowsEmployee(e.ID, e.DepartmentID) {
		s.logger.Warn("manual attendance outside scope", zap.String("employee_id", req.EmployeeID))
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: empID,
		Date:       date,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, row); err != nil {
		s.logger.Error("manual attendance upsert failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	// On conflict the existing row keeps its id; report what is stored.
	stored, err := qtx.FindByEmployeeAndDate(ctx, empID, date)
	if err != nil {
		s.logger.Error("manual attendance reload failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, err
	}

	s.audit.Record(ctx, caller, audit.ActionManualAttendance,
		fmt.Sprintf("Marked %s as %s on %s", e.Name, status, req.Date))
	return mapToResponse(*stored), nil
}

func (s *service) ManualCandidates(ctx context.Context, caller identity.Caller) ([]EmployeeOption, error) {
	refs, err := s.repo.ListEmployees(ctx, scope.ForResource(scope.KindAttendance, caller))
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeOption, len(refs))
	for i, r := range refs {
		out[i] = EmployeeOption{ID: r.ID.String(), Name: r.Name, Position: r.Position}
	}
	return out, nil
}

// ListByDate lists every visible employee with its attendance on date,
// defaulting to today, plus per-status counts.
func (s *service) ListByDate(ctx context.Context, caller identity.Caller, raw string) (DailyReport, error) {
	date := dateOf(s.now())
	if raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return DailyReport{}, attendanceerrors.ErrInvalidDate
		}
		date = d
	}

	rows, err := s.repo.ListByDate(ctx, date, scope.ForResource(scope.KindAttendance, caller))
	if err != nil {
		s.logger.Error("list attendance by date failed", zap.Error(err))
		return DailyReport{}, err
	}

	report := DailyReport{Date: date.Format(time.DateOnly), Rows: make([]DailyEntry, len(rows))}
	for i, r := range rows {
		report.Rows[i] = DailyEntry{
			EmployeeID: r.EmployeeID.String(),
			Name:       r.Name,
			Position:   r.Position,
			Department: r.Department,
			CheckIn:    clockString(r.CheckIn),
			CheckOut:   clockString(r.CheckOut),
			Status:     r.Status,
		}
		if r.Status == nil {
			continue
		}
		switch Status(*r.Status) {
		case StatusPresent:
			report.Stats.Present++
		case StatusAbsent:
			report.Stats.Absent++
		case StatusHalfDay:
			report.Stats.HalfDay++
		case StatusLeave:
			report.Stats.OnLeave++
		}
	}
	return report, nil
}

// Mine returns today's record, the last ten days with worked hours and the
// current month's summary.
func (s *service) Mine(ctx context.Context, caller identity.Caller) (MyAttendanceResponse, error) {
	if caller.EmployeeID == nil {
		return MyAttendanceResponse{}, attendanceerrors.ErrNoEmployeeRecord
	}
	today := dateOf(s.now())

	history, err := s.repo.History(ctx, *caller.EmployeeID, historyLimit)
	if err != nil {
		return MyAttendanceResponse{}, err
	}
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	month, err := s.repo.ListBetween(ctx, *caller.EmployeeID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return MyAttendanceResponse{}, err
	}

	resp := MyAttendanceResponse{History: make([]AttendanceResponse, len(history))}
	for i, a := range history {
		resp.History[i] = mapToResponse(a)
		if a.Date.Format(time.DateOnly) == today.Format(time.DateOnly) {
			t := resp.History[i]
			resp.Today = &t
		}
	}
	resp.Summary = Summarize(month)
	return resp, nil
}

// Summarize counts present and absent days and whole worked hours.
func Summarize(rows []Attendance) MonthlySummary {
	var sum MonthlySummary
	for _, a := range rows {
		switch a.Status {
		case StatusPresent:
			sum.PresentDays++
		case StatusAbsent:
			sum.AbsentDays++
		}
		if h := workedHours(a); h != nil {
			sum.TotalHours += *h
		}
	}
	return sum
}

func workedHours(a Attendance) *int {
	if a.CheckIn == nil || a.CheckOut == nil || a.CheckOut.Before(*a.CheckIn) {
		return nil
	}
	h := int(a.CheckOut.Sub(*a.CheckIn).Hours())
	return &h
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clockOn(date time.Time, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	layout := "15:04"
	if len(raw) == len(time.TimeOnly) {
		layout = time.TimeOnly
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTime
	}
	v := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return &v, nil
}

func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.TimeOnly)
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format(time.DateOnly),
		CheckIn:    clockString(a.CheckIn),
		CheckOut:   clockString(a.CheckOut),
		Status:     string(a.Status),
		TotalHours: workedHours(a),
	}
}
