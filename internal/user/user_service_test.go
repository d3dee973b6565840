package user_test

import (
	"context"
	"errors"
	"testing"

	auditmock "go-hrms/internal/audit/mock"
	"go-hrms/internal/identity"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*user.User, error)
	updatePasswordFn func(ctx context.Context, id uuid.UUID, hash string) error
	findAllFn        func(ctx context.Context) ([]user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *gorm.DB) user.Repository { return f }
func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	return nil
}
func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	return f.findAllFn(ctx)
}
func (f *fakeUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if f.updatePasswordFn != nil {
		return f.updatePasswordFn(ctx, id, hash)
	}
	return nil
}
func (f *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	caller := identity.Caller{UserID: uuid.New(), Role: identity.RoleEmployee}
	hash, err := user.HashPassword("old-secret")
	assert.NoError(t, err)

	existing := func(ctx context.Context, id uuid.UUID) (*user.User, error) {
		return &user.User{ID: id, PasswordHash: hash}, nil
	}

	t.Run("success updates hash and audits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := auditmock.NewMockRecorder(ctrl)
		var stored string
		repo := &fakeUserRepository{
			findByIDFn: existing,
			updatePasswordFn: func(ctx context.Context, id uuid.UUID, h string) error {
				assert.Equal(t, caller.UserID, id)
				stored = h
				return nil
			},
		}
		rec.EXPECT().Record(gomock.Any(), caller, "Password Changed", gomock.Any()).Times(1)

		err := user.NewService(repo, rec).ChangePassword(ctx, caller, user.ChangePasswordRequest{
			CurrentPassword: "old-secret",
			NewPassword:     "new-secret",
			ConfirmPassword: "new-secret",
		})

		assert.NoError(t, err)
		assert.True(t, user.CheckPassword(stored, "new-secret"))
	})

	t.Run("mismatch never touches storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := &fakeUserRepository{findByIDFn: func(context.Context, uuid.UUID) (*user.User, error) {
			t.Fatal("repository must not be called")
			return nil, nil
		}}

		err := user.NewService(repo, auditmock.NewMockRecorder(ctrl)).ChangePassword(ctx, caller, user.ChangePasswordRequest{
			CurrentPassword: "old-secret",
			NewPassword:     "a-secret",
			ConfirmPassword: "b-secret",
		})

		assert.ErrorIs(t, err, usererrors.ErrPasswordMismatch)
	})

	t.Run("wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := &fakeUserRepository{findByIDFn: existing, updatePasswordFn: func(context.Context, uuid.UUID, string) error {
			return errors.New("must not update")
		}}

		err := user.NewService(repo, auditmock.NewMockRecorder(ctrl)).ChangePassword(ctx, caller, user.ChangePasswordRequest{
			CurrentPassword: "guess",
			NewPassword:     "new-secret",
			ConfirmPassword: "new-secret",
		})

		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})
}

func TestUserService_Options(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := &fakeUserRepository{findAllFn: func(ctx context.Context) ([]user.User, error) {
		return []user.User{{ID: uuid.New(), Name: "Ana", Email: "ana@x.io", Role: identity.RoleHR}}, nil
	}}

	opts, err := user.NewService(repo, auditmock.NewMockRecorder(ctrl)).Options(context.Background())

	assert.NoError(t, err)
	assert.Len(t, opts, 1)
	assert.Equal(t, "hr", opts[0].Role)
}
