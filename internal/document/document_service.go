package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go-hrms/internal/audit"
	documenterrors "go-hrms/internal/document/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/identity"
	"go-hrms/internal/notification"
	"go-hrms/internal/scope"
	"go-hrms/internal/shared/besteffort"
	"go-hrms/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, caller identity.Caller, all bool) (DocumentListResponse, error)
	Upload(ctx context.Context, caller identity.Caller, in UploadInput) (DocumentResponse, error)
	Open(ctx context.Context, caller identity.Caller, id string) (DocumentFile, error)
	Delete(ctx context.Context, caller identity.Caller, id string) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	storage storage.FileStorage
	outbox  notification.Outbox
	audit   audit.Recorder
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	fileStorage storage.FileStorage,
	outbox notification.Outbox,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{db: db, repo: repo, storage: fileStorage, outbox: outbox, audit: recorder, logger: l}
}

// List returns the caller's own documents, or every document with the
// uploader options when all is set and the caller is an admin.
func (s *service) List(ctx context.Context, caller identity.Caller, all bool) (DocumentListResponse, error) {
	filter := scope.Own(caller)
	if all {
		filter = scope.ForResource(scope.KindDocument, caller)
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		return DocumentListResponse{}, err
	}

	resp := DocumentListResponse{Documents: make([]DocumentResponse, len(rows))}
	for i, r := range rows {
		resp.Documents[i] = mapToResponse(r)
	}
	if all && caller.Role == identity.RoleAdmin {
		users, err := s.repo.UserOptions(ctx)
		if err != nil {
			return DocumentListResponse{}, err
		}
		resp.Users = users
	}
	return resp, nil
}

// Upload stores the file and records its metadata. An admin may upload on
// behalf of another user, who is then notified; for anyone else user_id is
// ignored.
func (s *service) Upload(ctx context.Context, caller identity.Caller, in UploadInput) (DocumentResponse, error) {
	if strings.TrimSpace(in.Filename) == "" {
		return DocumentResponse{}, documenterrors.ErrEmptyFilename
	}
	if storage.SanitizeFilename(in.Filename) == "" {
		return DocumentResponse{}, documenterrors.ErrInvalidFilename
	}

	owner := caller.UserID
	if caller.Role == identity.RoleAdmin && strings.TrimSpace(in.UserID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(in.UserID))
		if err != nil {
			return DocumentResponse{}, documenterrors.ErrInvalidUserID
		}
		exists, err := s.repo.UserExists(ctx, id)
		if err != nil {
			return DocumentResponse{}, err
		}
		if !exists {
			return DocumentResponse{}, documenterrors.ErrUserNotFound
		}
		owner = id
	}

	s.logger.Debug("upload document requested",
		zap.String("owner_id", owner.String()),
		zap.String("filename", in.Filename),
	)

	path, err := s.storage.Save(ctx, in.File, in.Filename)
	if err != nil {
		s.logger.Error("store document failed", zap.Error(err))
		if errors.Is(err, storage.ErrInvalidPath) {
			return DocumentResponse{}, documenterrors.ErrInvalidFilename
		}
		return DocumentResponse{}, err
	}

	d := &Document{
		ID:       uuid.New(),
		UserID:   owner,
		Title:    strings.TrimSpace(in.Title),
		Type:     strings.TrimSpace(in.Type),
		FilePath: path,
	}
	if err := s.persist(ctx, d, owner != caller.UserID); err != nil {
		s.logger.Error("upload document persist failed", zap.Error(err))
		besteffort.Do(ctx, s.logger, "document.remove_orphan", func() error {
			return s.storage.Delete(ctx, path)
		})
		return DocumentResponse{}, err
	}
	s.logger.Info("upload document success", zap.String("document_id", d.ID.String()))

	s.audit.Record(ctx, caller, audit.ActionDocumentUploaded,
		fmt.Sprintf("Uploaded document %s for user %s", path, owner))
	return mapToResponse(DocumentRow{Document: *d}), nil
}

func (s *service) persist(ctx context.Context, d *Document, notify bool) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, d); err != nil {
		return err
	}
	if notify {
		err := s.outbox.Enqueue(ctx, tx, notification.Request{
			UserID:        d.UserID,
			Message:       fmt.Sprintf("A new document '%s' has been uploaded for you", d.Title),
			AggregateType: events.AggregateDocument,
			AggregateID:   d.ID.String(),
		})
		if err != nil {
			return err
		}
	}
	return tx.Commit().Error
}

func (s *service) Open(ctx context.Context, caller identity.Caller, id string) (DocumentFile, error) {
	d, err := s.find(ctx, caller, id)
	if err != nil {
		return DocumentFile{}, err
	}

	rc, err := s.storage.Open(ctx, d.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrInvalidPath) {
			s.logger.Warn("document file missing", zap.String("document_id", id), zap.String("path", d.FilePath))
			return DocumentFile{}, documenterrors.ErrFileMissing
		}
		return DocumentFile{}, err
	}
	return DocumentFile{Filename: d.FilePath, Content: rc}, nil
}

// Delete removes the metadata row, then the stored file. A file that cannot
// be removed is logged and left behind.
func (s *service) Delete(ctx context.Context, caller identity.Caller, id string) error {
	d, err := s.find(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, d.ID); err != nil {
		s.logger.Error("delete document failed", zap.String("document_id", id), zap.Error(err))
		return err
	}
	besteffort.Do(ctx, s.logger, "document.remove_file", func() error {
		return s.storage.Delete(ctx, d.FilePath)
	})

	s.audit.Record(ctx, caller, audit.ActionDocumentDeleted,
		fmt.Sprintf("Deleted document %s (%s)", d.ID, d.FilePath))
	return nil
}

// find loads a document the caller owns, or any document for an admin.
func (s *service) find(ctx context.Context, caller identity.Caller, id string) (*Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, documenterrors.ErrInvalidDocumentID
	}
	d, err := s.repo.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	if !scope.ForResource(scope.KindDocument, caller).AllowsOwner(d.UserID) {
		return nil, documenterrors.ErrDocumentNotFound
	}
	return d, nil
}

func mapToResponse(r DocumentRow) DocumentResponse {
	return DocumentResponse{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		UserName:   r.UserName,
		UserRole:   r.UserRole,
		Title:      r.Title,
		Type:       r.Type,
		FilePath:   r.FilePath,
		UploadedAt: r.UploadedAt.Format(time.RFC3339),
	}
}
