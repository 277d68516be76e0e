package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/storage"
	"github.com/bookmylastwishes/portal/internal/validation"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentService is the vault for wills, deeds and policies. Everything in
// it is private: access goes through short-lived presigned URLs only.
type DocumentService struct {
	documentRepository repository.DocumentRepository
	storage            storage.Storage
}

func NewDocumentService(documentRepository repository.DocumentRepository, storage storage.Storage) *DocumentService {
	return &DocumentService{
		documentRepository: documentRepository,
		storage:            storage,
	}
}

func (s *DocumentService) Upload(ctx context.Context, userID string, header *multipart.FileHeader) (*model.Document, error) {
	err := validation.ValidateFile(header, validation.DocumentConstraints)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	fileName := filepath.Base(header.Filename)
	path := DocumentPath(userID, fileName)
	err = s.storage.Save(ctx, path, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		UserID:      userID,
		FileName:    fileName,
		MimeType:    header.Header.Get("Content-Type"),
		Size:        header.Size,
		StoragePath: path,
		CreatedAt:   time.Now(),
	}

	err = s.documentRepository.Create(doc)
	if err != nil {
		// Best effort cleanup; an orphaned object is better than a
		// phantom row.
		delErr := s.storage.Delete(ctx, path)
		if delErr != nil {
			slog.Warn("failed to clean up orphaned upload", "error", delErr, "path", path)
		}
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	slog.Info("document uploaded", "user_id", userID, "document_id", doc.ID)
	return doc, nil
}

func (s *DocumentService) List(userID string) ([]*model.Document, error) {
	return s.documentRepository.ByUserID(userID)
}

// DownloadURL returns a short-lived presigned URL for one document.
func (s *DocumentService) DownloadURL(userID, docID string, expiry time.Duration) (string, error) {
	doc, err := s.documentRepository.ByID(userID, docID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("failed to load document: %w", err)
	}

	url, err := s.storage.PresignedURL(doc.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign document: %w", err)
	}
	return url, nil
}

func (s *DocumentService) Delete(ctx context.Context, userID, docID string) error {
	doc, err := s.documentRepository.ByID(userID, docID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to load document: %w", err)
	}

	err = s.documentRepository.Delete(userID, docID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	err = s.storage.Delete(ctx, doc.StoragePath)
	if err != nil {
		slog.Warn("failed to delete document from storage", "error", err, "path", doc.StoragePath)
	}

	return nil
}
