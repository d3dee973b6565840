package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const latestLimit = 100

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	ListLatest(ctx context.Context) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListLatest(ctx context.Context) ([]AuditLogResponse, error) {
	rows, err := s.repo.ListLatest(ctx, latestLimit)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AuditLogResponse, len(rows))
	for i, r := range rows {
		resp[i] = AuditLogResponse{
			ID:        r.ID.String(),
			UserID:    r.UserID.String(),
			UserName:  r.UserName,
			Action:    r.Action,
			Details:   r.Details,
			IPAddress: r.IPAddress,
			Timestamp: r.Timestamp.Format(time.RFC3339),
		}
	}
	return resp, nil
}
