package rbac

import (
	"sort"
	"sync"

	"go-hrms/internal/identity"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role identity.Role, resource, action string) (bool, error)
	Permissions(role identity.Role) ([]string, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the default policy into enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer.ClearPolicy()
	if _, err := enforcer.AddPolicies(DefaultPolicy()); err != nil {
		return nil, err
	}
	l.Info("rbac policy loaded", zap.Int("rules", len(DefaultPolicy())))

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(role identity.Role, resource, action string) (bool, error) {
	if !role.Valid() {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role.String()),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role.String()),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions lists "resource:action" strings granted to role, sorted.
func (s *service) Permissions(role identity.Role) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.enforcer.GetFilteredPolicy(0, role.String())
	if err != nil {
		return nil, err
	}
	perms := make([]string, 0, len(rows))
	for _, r := range rows {
		perms = append(perms, r[1]+":"+r[2])
	}
	sort.Strings(perms)
	return perms, nil
}
