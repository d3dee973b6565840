package dashboard

import (
	"context"
	"time"

	"go-hrms/internal/identity"
	"go-hrms/internal/scope"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	departmentAttendanceLimit = 5
	recentAttendanceLimit     = 5
)

type Service interface {
	Admin(ctx context.Context, caller identity.Caller) (AdminDashboard, error)
	HR(ctx context.Context, caller identity.Caller) (HRDashboard, error)
	Employee(ctx context.Context, caller identity.Caller) (EmployeeDashboard, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(repo, logger...).(*service)
	s.now = now
	return s
}

func (s *service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Admin runs the five organisation-wide counts in parallel.
func (s *service) Admin(ctx context.Context, caller identity.Caller) (AdminDashboard, error) {
	filter := scope.ForResource(scope.KindEmployee, caller)
	today := s.today()

	var out AdminDashboard
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalEmployees, err = s.repo.CountEmployees(gCtx, identity.RoleEmployee, filter)
		return err
	})
	g.Go(func() (err error) {
		out.TotalHR, err = s.repo.CountEmployees(gCtx, identity.RoleHR, filter)
		return err
	})
	g.Go(func() (err error) {
		out.TotalDepartments, err = s.repo.CountDepartments(gCtx)
		return err
	})
	g.Go(func() (err error) {
		out.TodayAttendance, err = s.repo.CountAttendance(gCtx, today, filter)
		return err
	})
	g.Go(func() (err error) {
		out.PendingLeaves, err = s.repo.CountPendingLeaves(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("admin dashboard failed", zap.Error(err))
		return AdminDashboard{}, err
	}
	return out, nil
}

// HR is the department view: headcount, today's attendance, pending leave
// and a short attendance list for today.
func (s *service) HR(ctx context.Context, caller identity.Caller) (HRDashboard, error) {
	filter := scope.ForResource(scope.KindEmployee, caller)
	today := s.today()

	var (
		out  HRDashboard
		rows []AttendanceRow
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.DepartmentEmployees, err = s.repo.CountEmployees(gCtx, identity.RoleEmployee, filter)
		return err
	})
	g.Go(func() (err error) {
		out.TodayAttendance, err = s.repo.CountAttendance(gCtx, today, filter)
		return err
	})
	g.Go(func() (err error) {
		out.PendingLeaves, err = s.repo.CountPendingLeaves(gCtx, filter)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.repo.DepartmentAttendance(gCtx, today, filter, departmentAttendanceLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("hr dashboard failed", zap.Error(err))
		return HRDashboard{}, err
	}

	out.DepartmentAttendance = mapRows(rows)
	return out, nil
}

func (s *service) Employee(ctx context.Context, caller identity.Caller) (EmployeeDashboard, error) {
	out := EmployeeDashboard{TodayStatus: StatusNotMarked, RecentAttendance: []AttendanceResponse{}}
	if caller.EmployeeID == nil {
		return out, nil
	}
	employeeID := *caller.EmployeeID
	today := s.today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var rows []AttendanceRow
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.PresentDays, err = s.repo.CountPresent(gCtx, employeeID, monthStart, monthStart.AddDate(0, 1, 0))
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.repo.RecentAttendance(gCtx, employeeID, recentAttendanceLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("employee dashboard failed", zap.Error(err))
		return EmployeeDashboard{}, err
	}

	// rows are newest first, so today's row can only be the first one
	if len(rows) > 0 && rows[0].Date != nil && rows[0].Date.Equal(today) && rows[0].Status != nil {
		out.TodayStatus = *rows[0].Status
	}
	out.RecentAttendance = mapRows(rows)
	return out, nil
}

func mapRows(rows []AttendanceRow) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = AttendanceResponse{
			Name:     r.Name,
			CheckIn:  clock(r.CheckIn),
			CheckOut: clock(r.CheckOut),
			Status:   r.Status,
		}
		if r.Date != nil {
			resp[i].Date = r.Date.Format(time.DateOnly)
		}
	}
	return resp
}

func clock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.TimeOnly)
	return &v
}
