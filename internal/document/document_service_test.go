package document_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"go-hrms/internal/audit"
	auditmock "go-hrms/internal/audit/mock"
	"go-hrms/internal/document"
	documenterrors "go-hrms/internal/document/errors"
	documentmock "go-hrms/internal/document/mock"
	"go-hrms/internal/events"
	"go-hrms/internal/identity"
	"go-hrms/internal/notification"
	notificationmock "go-hrms/internal/notification/mock"
	"go-hrms/internal/scope"
	storagemock "go-hrms/internal/shared/storage/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  document.Service
	repo     *documentmock.MockRepository
	storage  *storagemock.MockFileStorage
	outbox   *notificationmock.MockOutbox
	recorder *auditmock.MockRecorder
}

var (
	owner = identity.Caller{UserID: uuid.New(), Name: "Dana", Role: identity.RoleEmployee}
	hr    = identity.Caller{UserID: uuid.New(), Name: "Hana", Role: identity.RoleHR}
	admin = identity.Caller{UserID: uuid.New(), Name: "Root", Role: identity.RoleAdmin}
)

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	repo := documentmock.NewMockRepository(ctrl)
	store := storagemock.NewMockFileStorage(ctrl)
	outbox := notificationmock.NewMockOutbox(ctrl)
	recorder := auditmock.NewMockRecorder(ctrl)

	return &serviceDeps{
		sqlMock:  sqlMock,
		service:  document.NewService(gdb, repo, store, outbox, recorder),
		repo:     repo,
		storage:  store,
		outbox:   outbox,
		recorder: recorder,
	}
}

func uploadInput(userID string) document.UploadInput {
	return document.UploadInput{
		UploadRequest: document.UploadRequest{Title: "Contract", Type: "contract", UserID: userID},
		Filename:      "contract.pdf",
		File:          strings.NewReader("%PDF"),
	}
}

func TestService_Upload_Self(t *testing.T) {
	d := setupServiceTest(t)
	ctx := context.Background()

	d.storage.EXPECT().Save(ctx, gomock.Any(), "contract.pdf").Return("20240315090500_contract.pdf", nil)
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, doc *document.Document) error {
		assert.Equal(t, owner.UserID, doc.UserID)
		assert.Equal(t, "Contract", doc.Title)
		assert.Equal(t, "20240315090500_contract.pdf", doc.FilePath)
		return nil
	})
	d.sqlMock.ExpectCommit()
	d.recorder.EXPECT().Record(ctx, owner, audit.ActionDocumentUploaded,
		fmt.Sprintf("Uploaded document 20240315090500_contract.pdf for user %s", owner.UserID))

	// user_id is ignored for non-admins, so no notification is written
	resp, err := d.service.Upload(ctx, owner, uploadInput(uuid.NewString()))
	require.NoError(t, err)
	assert.Equal(t, owner.UserID.String(), resp.UserID)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestService_Upload_AdminForOtherUserNotifies(t *testing.T) {
	d := setupServiceTest(t)
	ctx := context.Background()
	target := uuid.New()

	d.repo.EXPECT().UserExists(ctx, target).Return(true, nil)
	d.storage.EXPECT().Save(ctx, gomock.Any(), "contract.pdf").Return("x_contract.pdf", nil)
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.outbox.EXPECT().Enqueue(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *gorm.DB, req notification.Request) error {
			assert.Equal(t, target, req.UserID)
			assert.Equal(t, "A new document 'Contract' has been uploaded for you", req.Message)
			assert.Equal(t, events.AggregateDocument, req.AggregateType)
			return nil
		})
	d.sqlMock.ExpectCommit()
	d.recorder.EXPECT().Record(ctx, admin, audit.ActionDocumentUploaded, gomock.Any())

	resp, err := d.service.Upload(ctx, admin, uploadInput(target.String()))
	require.NoError(t, err)
	assert.Equal(t, target.String(), resp.UserID)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestService_Upload_AdminUnknownUser(t *testing.T) {
	d := setupServiceTest(t)
	ctx := context.Background()
	target := uuid.New()

	d.repo.EXPECT().UserExists(ctx, target).Return(false, nil)

	_, err := d.service.Upload(ctx, admin, uploadInput(target.String()))
	assert.ErrorIs(t, err, documenterrors.ErrUserNotFound)
}

func TestService_Upload_InvalidInput(t *testing.T) {
	d := setupServiceTest(t)
	ctx := context.Background()

	in := uploadInput("")
	in.Filename = "  "
	_, err := d.service.Upload(ctx, owner, in)
	assert.ErrorIs(t, err, documenterrors.ErrEmptyFilename)

	in.Filename = "../.."
	_, err = d.service.Upload(ctx, owner, in)
	assert.ErrorIs(t, err, documenterrors.ErrInvalidFilename)

	_, err = d.service.Upload(ctx, admin, uploadInput("not-a-uuid"))
	assert.ErrorIs(t, err, documenterrors.ErrInvalidUserID)
}

func TestService_Upload_PersistFailureRemovesFile(t *testing.T) {
	d := setupServiceTest(t)
	ctx := context.Background()

	d.storage.EXPECT().Save(ctx, gomock.Any(), "contract.pdf").Return("x_contract.pdf", nil)
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))
	d.sqlMock.ExpectRollback()
	d.storage.EXPECT().Delete(ctx, "x_contract.pdf").Return(nil)

	_, err := d.service.Upload(ctx, owner, uploadInput(""))
	assert.EqualError(t, err, "db down")
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("own documents only", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().List(ctx, scope.Own(owner)).Return([]document.DocumentRow{
			{Document: document.Document{ID: uuid.New(), UserID: owner.UserID, Title: "Contract"}},
		}, nil)

		resp, err := d.service.List(ctx, owner, false)
		require.NoError(t, err)
		assert.Len(t, resp.Documents, 1)
		assert.Nil(t, resp.Users)
	})

	t.Run("admin sees all with user options", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().List(ctx, scope.ForResource(scope.KindDocument, admin)).Return([]document.DocumentRow{
			{Document: document.Document{ID: uuid.New(), UserID: owner.UserID}, UserName: "Dana", UserRole: "employee"},
		}, nil)
		d.repo.EXPECT().UserOptions(ctx).Return([]document.UserOption{{ID: owner.UserID, Name: "Dana", Role: "employee"}}, nil)

		resp, err := d.service.List(ctx, admin, true)
		require.NoError(t, err)
		assert.Equal(t, "Dana", resp.Documents[0].UserName)
		assert.Len(t, resp.Users, 1)
	})
}

func TestService_Open(t *testing.T) {
	ctx := context.Background()
	doc := &document.Document{ID: uuid.New(), UserID: owner.UserID, FilePath: "x_contract.pdf"}

	t.Run("owner", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().FindByID(ctx, doc.ID).Return(doc, nil)
		d.storage.EXPECT().Open(ctx, "x_contract.pdf").Return(io.NopCloser(strings.NewReader("%PDF")), nil)

		file, err := d.service.Open(ctx, owner, doc.ID.String())
		require.NoError(t, err)
		defer file.Content.Close()
		assert.Equal(t, "x_contract.pdf", file.Filename)
	})

	t.Run("other non-admin user reads as not found", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().FindByID(ctx, doc.ID).Return(doc, nil)

		_, err := d.service.Open(ctx, hr, doc.ID.String())
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().FindByID(ctx, doc.ID).Return(doc, nil)
		d.storage.EXPECT().Open(ctx, "x_contract.pdf").Return(nil, fmt.Errorf("file not found: %w", os.ErrNotExist))

		_, err := d.service.Open(ctx, admin, doc.ID.String())
		assert.ErrorIs(t, err, documenterrors.ErrFileMissing)
	})

	t.Run("unknown id", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().FindByID(ctx, doc.ID).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.Open(ctx, admin, doc.ID.String())
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	doc := &document.Document{ID: uuid.New(), UserID: owner.UserID, FilePath: "x_contract.pdf"}

	t.Run("storage failure does not fail the delete", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().FindByID(ctx, doc.ID).Return(doc, nil)
		d.repo.EXPECT().Delete(ctx, doc.ID).Return(nil)
		d.storage.EXPECT().Delete(ctx, "x_contract.pdf").Return(errors.New("permission denied"))
		d.recorder.EXPECT().Record(ctx, owner, audit.ActionDocumentDeleted,
			fmt.Sprintf("Deleted document %s (x_contract.pdf)", doc.ID))

		assert.NoError(t, d.service.Delete(ctx, owner, doc.ID.String()))
	})

	t.Run("non-owner", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().FindByID(ctx, doc.ID).Return(doc, nil)

		err := d.service.Delete(ctx, hr, doc.ID.String())
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		d := setupServiceTest(t)
		err := d.service.Delete(ctx, owner, "nope")
		assert.ErrorIs(t, err, documenterrors.ErrInvalidDocumentID)
	})
}
