package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/events"
	"github.com/spec-kit/taxease-service/internal/repository"
	"github.com/spec-kit/taxease-service/internal/storage"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// MaxDocumentSize caps uploads at 10 MiB.
const MaxDocumentSize = 10 << 20

// DocumentUpload carries one inbound file.
type DocumentUpload struct {
	TaxProfileID *string
	Type         string
	OriginalName string
	ContentType  string
	Body         []byte
}

// DocumentService stores uploads in object storage and tracks their metadata.
type DocumentService struct {
	docs       repository.DocumentRepository
	profiles   repository.TaxProfileRepository
	store      storage.ObjectStore
	dispatcher events.Dispatcher
}

// NewDocumentService builds the service.
func NewDocumentService(docs repository.DocumentRepository, profiles repository.TaxProfileRepository,
	store storage.ObjectStore, dispatcher events.Dispatcher) *DocumentService {
	return &DocumentService{docs: docs, profiles: profiles, store: store, dispatcher: dispatcher}
}

// Upload validates the file, writes it to object storage and persists metadata.
func (s *DocumentService) Upload(ctx context.Context, userID string, upload DocumentUpload) (*domain.Document, error) {
	if len(upload.Body) == 0 {
		return nil, apperrors.NewValidationError("no file uploaded", nil)
	}
	if len(upload.Body) > MaxDocumentSize {
		return nil, apperrors.NewValidationError("file exceeds 10 MiB limit", nil)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.OriginalName), "."))
	fileType, ok := domain.ParseDocumentFileType(ext)
	if !ok {
		return nil, apperrors.NewValidationError("unsupported file type", map[string]any{"extension": ext})
	}

	if upload.TaxProfileID != nil {
		profile, err := s.profiles.GetByID(ctx, *upload.TaxProfileID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("tax profile", nil)
			}
			return nil, apperrors.NewInternalError(err)
		}
		if profile.UserID != userID {
			return nil, apperrors.NewNotFound("tax profile", nil)
		}
	}

	docType := upload.Type
	if docType == "" {
		docType = "other"
	}

	key := storage.NewStorageKey(userID)
	if err := s.store.Put(ctx, key, upload.ContentType, upload.Body); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	doc := &domain.Document{
		UserID:       userID,
		TaxProfileID: upload.TaxProfileID,
		Type:         docType,
		OriginalName: upload.OriginalName,
		StorageKey:   key,
		FileType:     fileType,
		Size:         int64(len(upload.Body)),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventDocumentUploaded, userID,
			events.DocumentUploadedPayload{
				DocumentID:   doc.ID,
				TaxProfileID: doc.TaxProfileID,
				FileType:     doc.FileType,
				Size:         doc.Size,
			}))
	}
	return doc, nil
}

// List returns the caller's documents, newest first.
func (s *DocumentService) List(ctx context.Context, userID string) ([]*domain.Document, error) {
	docs, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return docs, nil
}

// DownloadURL returns a presigned, time-limited URL for one of the caller's
// documents.
func (s *DocumentService) DownloadURL(ctx context.Context, userID, docID string) (string, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("document", nil)
		}
		return "", apperrors.NewInternalError(err)
	}
	if doc.UserID != userID {
		return "", apperrors.NewNotFound("document", nil)
	}

	url, err := s.store.PresignGet(ctx, doc.StorageKey)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return url, nil
}
