package department

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/audit"
	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/identity"
	"go-hrms/internal/shared/besteffort"
	"go-hrms/internal/shared/dberr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsCacheKey = "departments:options"
	optionsCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller identity.Caller, req DepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) (DepartmentListResponse, error)
	Options(ctx context.Context) ([]DepartmentOption, error)
	Update(ctx context.Context, caller identity.Caller, id string, req DepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, caller identity.Caller, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		audit:  recorder,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, caller identity.Caller, req DepartmentRequest) (DepartmentResponse, error) {
	dept := &Department{ID: uuid.New()}
	if err := applyRequest(dept, req); err != nil {
		return DepartmentResponse{}, err
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		if dberr.IsUniqueViolation(err) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
		}
		s.logger.Error("create department failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.audit.Record(ctx, caller, audit.ActionDepartmentAdded, "Added department: "+dept.Name)
	s.logger.Info("create department success", zap.String("department_id", dept.ID.String()))

	return mapToResponse(DepartmentWithCount{Department: *dept}), nil
}

func (s *service) GetAll(ctx context.Context) (DepartmentListResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return DepartmentListResponse{}, err
	}
	total, err := s.repo.CountAllEmployees(ctx)
	if err != nil {
		return DepartmentListResponse{}, err
	}

	resp := DepartmentListResponse{
		Departments:    make([]DepartmentResponse, len(rows)),
		TotalEmployees: total,
	}
	for i, r := range rows {
		resp.Departments[i] = mapToResponse(r)
	}
	return resp, nil
}

// Options serves the department dropdown from Redis, collapsing concurrent
// misses into one query.
func (s *service) Options(ctx context.Context) ([]DepartmentOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var opts []DepartmentOption
			if json.Unmarshal([]byte(cached), &opts) == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]DepartmentOption, len(rows))
		for i, r := range rows {
			opts[i] = DepartmentOption{ID: r.ID.String(), Name: r.Name}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(opts); err == nil {
				besteffort.Do(ctx, s.logger, "department.cache.set", func() error {
					return s.rdb.Set(ctx, OptionsCacheKey, payload, optionsCacheTTL).Err()
				})
			}
		}
		return opts, nil
	})
	if err != nil {
		s.logger.Error("department options failed", zap.Error(err))
		return nil, err
	}
	return v.([]DepartmentOption), nil
}

func (s *service) Update(ctx context.Context, caller identity.Caller, id string, req DepartmentRequest) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	if err := applyRequest(dept, req); err != nil {
		return DepartmentResponse{}, err
	}
	if err := s.repo.Update(ctx, dept); err != nil {
		if dberr.IsUniqueViolation(err) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
		}
		s.logger.Error("update department failed", zap.String("department_id", id), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.audit.Record(ctx, caller, audit.ActionDepartmentUpdated, "Updated department: "+dept.Name)

	return mapToResponse(DepartmentWithCount{Department: *dept}), nil
}

// Delete refuses while any employee still references the department. The
// count and the delete share one transaction; a foreign key failure from a
// concurrent insert maps to the same error.
func (s *service) Delete(ctx context.Context, caller identity.Caller, id string) error {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(tx.Error))
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return departmenterrors.ErrDepartmentNotFound
		}
		return err
	}

	count, err := qtx.CountEmployees(ctx, deptID)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("delete department refused",
			zap.String("department_id", id),
			zap.Int64("employee_count", count),
		)
		return departmenterrors.ErrDepartmentHasEmployees
	}

	if err := qtx.Delete(ctx, deptID); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return departmenterrors.ErrDepartmentHasEmployees
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.audit.Record(ctx, caller, audit.ActionDepartmentDeleted, "Deleted department: "+dept.Name)
	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	besteffort.Do(ctx, s.logger, "department.cache.invalidate", func() error {
		return s.rdb.Del(ctx, OptionsCacheKey).Err()
	})
}

func applyRequest(dept *Department, req DepartmentRequest) error {
	dept.Name = strings.TrimSpace(req.Name)
	dept.Location = req.Location
	dept.Description = req.Description

	budget := decimal.Zero
	if strings.TrimSpace(req.Budget) != "" {
		b, err := decimal.NewFromString(strings.TrimSpace(req.Budget))
		if err != nil || b.IsNegative() {
			return departmenterrors.ErrInvalidBudget
		}
		budget = b
	}
	dept.Budget = budget

	dept.ManagerID = nil
	if req.ManagerID != nil && *req.ManagerID != "" {
		m, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return departmenterrors.ErrInvalidManagerID
		}
		dept.ManagerID = &m
	}
	return nil
}

func mapToResponse(d DepartmentWithCount) DepartmentResponse {
	resp := DepartmentResponse{
		ID:            d.ID.String(),
		Name:          d.Name,
		ManagerName:   d.ManagerName,
		Budget:        d.Budget.StringFixed(2),
		Location:      d.Location,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
	}
	if d.ManagerID != nil {
		v := d.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
