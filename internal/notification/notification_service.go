package notification

import (
	"context"
	"time"

	"go-hrms/internal/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// List returns the caller's notifications as they were before the call
	// and marks all of them read in the same transaction.
	List(ctx context.Context, caller identity.Caller) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Deliver(ctx context.Context, userID uuid.UUID, message string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, caller identity.Caller) ([]NotificationResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.ListByUser(ctx, caller.UserID)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, err
	}
	if err := qtx.MarkAllRead(ctx, caller.UserID); err != nil {
		s.logger.Error("mark notifications read failed", zap.Error(err))
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = NotificationResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *service) Deliver(ctx context.Context, userID uuid.UUID, message string) error {
	n := &Notification{ID: uuid.New(), UserID: userID, Message: message}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("deliver notification failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("notification delivered", zap.String("user_id", userID.String()))
	return nil
}
