package user

import (
	"context"
	"errors"

	"go-hrms/internal/audit"
	"go-hrms/internal/identity"
	usererrors "go-hrms/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	ChangePassword(ctx context.Context, caller identity.Caller, req ChangePasswordRequest) error
	Options(ctx context.Context) ([]UserOptionResponse, error)
}

type service struct {
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, audit: recorder, logger: l}
}

func (s *service) ChangePassword(ctx context.Context, caller identity.Caller, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return usererrors.ErrPasswordMismatch
	}

	u, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		s.logger.Error("change password load user failed", zap.Error(err))
		return err
	}

	if !CheckPassword(u.PasswordHash, req.CurrentPassword) {
		s.logger.Warn("change password wrong current password", zap.String("user_id", caller.UserID.String()))
		return usererrors.ErrWrongPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		s.logger.Error("change password persist failed", zap.Error(err))
		return err
	}

	s.audit.Record(ctx, caller, audit.ActionPasswordChanged, "User changed password")
	s.logger.Info("change password success", zap.String("user_id", u.ID.String()))
	return nil
}

// Options lists every account; admin uses it to pick a document owner.
func (s *service) Options(ctx context.Context) ([]UserOptionResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]UserOptionResponse, len(users))
	for i, u := range users {
		resp[i] = UserOptionResponse{
			ID:    u.ID.String(),
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role.String(),
		}
	}
	return resp, nil
}
