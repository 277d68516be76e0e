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

	"github.com/bookmylastwishes/portal/internal/metrics"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/storage"
	"github.com/bookmylastwishes/portal/internal/validation"
)

var ErrPatronNotFound = errors.New("patron record not found")

type PatronService struct {
	patronRepository     repository.PatronRepository
	tempPatronRepository repository.TempPatronRepository
	storage              storage.Storage
	emailService         *EmailService
	metrics              *metrics.Collector
}

func NewPatronService(
	patronRepository repository.PatronRepository,
	tempPatronRepository repository.TempPatronRepository,
	storage storage.Storage,
	emailService *EmailService,
	metrics *metrics.Collector,
) *PatronService {
	return &PatronService{
		patronRepository:     patronRepository,
		tempPatronRepository: tempPatronRepository,
		storage:              storage,
		emailService:         emailService,
		metrics:              metrics,
	}
}

// SubmitPledge routes a pledge form by authentication state. An anonymous
// visitor's pledge is parked in the temp store keyed by email until they sign
// up; a signed-in patron's pledge writes straight through to their record.
// Files are validated before anything is stored.
func (s *PatronService) SubmitPledge(ctx context.Context, user *model.User, payload *model.PledgePayload, files []*multipart.FileHeader) error {
	err := validation.ValidatePledge(payload)
	if err != nil {
		return err
	}

	for _, header := range files {
		err = validation.ValidateFile(header, validation.ImageConstraints, validation.MediaConstraints)
		if err != nil {
			return fmt.Errorf("upload %q rejected: %w", header.Filename, err)
		}
	}

	payload.Version = model.PledgePayloadVersion

	if user == nil {
		return s.submitAnonymous(ctx, payload, files)
	}
	return s.submitAuthenticated(ctx, user, payload, files)
}

func (s *PatronService) submitAnonymous(ctx context.Context, payload *model.PledgePayload, files []*multipart.FileHeader) error {
	tempID := uuid.New().String()

	paths, err := s.saveUploads(ctx, files, func(name string) string {
		return TempPath(tempID, name)
	})
	if err != nil {
		return err
	}
	payload.TopMemoriesURL = paths

	tp := &model.TempPatron{
		ID:        tempID,
		Email:     payload.Email,
		FormData:  *payload,
		CreatedAt: time.Now(),
	}

	err = s.tempPatronRepository.Upsert(tp)
	if err != nil {
		return fmt.Errorf("failed to store pledge: %w", err)
	}

	err = s.emailService.SendPledgeReceivedEmail(payload.Email, payload.FullName)
	if err != nil {
		slog.Warn("failed to send pledge received email", "error", err, "email", payload.Email)
	}

	if s.metrics != nil {
		s.metrics.RecordPledgeSubmitted()
	}
	slog.Info("anonymous pledge stored", "temp_id", tempID)
	return nil
}

func (s *PatronService) submitAuthenticated(ctx context.Context, user *model.User, payload *model.PledgePayload, files []*multipart.FileHeader) error {
	paths, err := s.saveUploads(ctx, files, func(name string) string {
		return MemoryPath(user.ID, name)
	})
	if err != nil {
		return err
	}

	// Resubmission keeps earlier uploads; new ones are appended.
	existing, err := s.patronRepository.ByID(user.ID)
	if err == nil {
		paths = append(existing.TopMemoriesURL, paths...)
	} else if !errors.Is(err, repository.ErrPatronNotFound) {
		return fmt.Errorf("failed to load patron: %w", err)
	}

	patron := patronFromPayload(user, payload, paths)
	if existing != nil {
		patron.AvatarURL = existing.AvatarURL
	}

	err = s.patronRepository.Upsert(patron)
	if err != nil {
		return fmt.Errorf("failed to store pledge: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordPledgeSubmitted()
	}
	slog.Info("pledge stored", "user_id", user.ID)
	return nil
}

func (s *PatronService) saveUploads(ctx context.Context, files []*multipart.FileHeader, pathFor func(name string) string) ([]string, error) {
	var paths []string
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}

		dst := pathFor(filepath.Base(header.Filename))
		err = s.storage.Save(ctx, dst, file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to store upload: %w", err)
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

func (s *PatronService) Profile(userID string) (*model.Patron, error) {
	patron, err := s.patronRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPatronNotFound) {
			return nil, ErrPatronNotFound
		}
		return nil, fmt.Errorf("failed to load patron: %w", err)
	}
	return patron, nil
}

// UpdateProfile overwrites the editable pledge fields. Uploads and avatar
// are managed by their own operations and stay untouched.
func (s *PatronService) UpdateProfile(user *model.User, payload *model.PledgePayload) error {
	err := validation.ValidatePledge(payload)
	if err != nil {
		return err
	}

	existing, err := s.patronRepository.ByID(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPatronNotFound) {
			return ErrPatronNotFound
		}
		return fmt.Errorf("failed to load patron: %w", err)
	}

	patron := patronFromPayload(user, payload, existing.TopMemoriesURL)
	patron.AvatarURL = existing.AvatarURL

	err = s.patronRepository.Upsert(patron)
	if err != nil {
		return fmt.Errorf("failed to update patron: %w", err)
	}

	slog.Info("patron profile updated", "user_id", user.ID)
	return nil
}

// UploadAvatar stores the profile photo at a fixed key so re-uploads replace
// the previous one.
func (s *PatronService) UploadAvatar(ctx context.Context, userID string, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", err
	}

	patron, err := s.patronRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPatronNotFound) {
			return "", ErrPatronNotFound
		}
		return "", fmt.Errorf("failed to load patron: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	path := AvatarPath(userID)
	err = s.storage.Save(ctx, path, file)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	patron.AvatarURL = &path
	patron.UpdatedAt = time.Now()
	err = s.patronRepository.Upsert(patron)
	if err != nil {
		return "", fmt.Errorf("failed to update patron: %w", err)
	}

	return s.storage.PublicURL(path), nil
}

// RemoveAvatar clears the profile photo. The stored object is deleted
// best-effort; the row update is what matters.
func (s *PatronService) RemoveAvatar(ctx context.Context, userID string) error {
	patron, err := s.patronRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPatronNotFound) {
			return ErrPatronNotFound
		}
		return fmt.Errorf("failed to load patron: %w", err)
	}

	if patron.AvatarURL == nil {
		return nil
	}

	path := *patron.AvatarURL
	patron.AvatarURL = nil
	patron.UpdatedAt = time.Now()
	err = s.patronRepository.Upsert(patron)
	if err != nil {
		return fmt.Errorf("failed to update patron: %w", err)
	}

	err = s.storage.Delete(ctx, path)
	if err != nil {
		slog.Warn("failed to delete avatar from storage", "error", err, "path", path)
	}

	return nil
}

// AddMemory appends one photo or recording to the patron's memories.
func (s *PatronService) AddMemory(ctx context.Context, userID string, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints, validation.MediaConstraints)
	if err != nil {
		return "", err
	}

	patron, err := s.patronRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPatronNotFound) {
			return "", ErrPatronNotFound
		}
		return "", fmt.Errorf("failed to load patron: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	path := MemoryPath(userID, filepath.Base(header.Filename))
	err = s.storage.Save(ctx, path, file)
	if err != nil {
		return "", fmt.Errorf("failed to store memory: %w", err)
	}

	patron.TopMemoriesURL = append(patron.TopMemoriesURL, path)
	patron.UpdatedAt = time.Now()
	err = s.patronRepository.Upsert(patron)
	if err != nil {
		return "", fmt.Errorf("failed to update patron: %w", err)
	}

	return s.storage.PublicURL(path), nil
}

// RemoveMemory drops one upload from the record and from storage.
func (s *PatronService) RemoveMemory(ctx context.Context, userID, path string) error {
	patron, err := s.patronRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPatronNotFound) {
			return ErrPatronNotFound
		}
		return fmt.Errorf("failed to load patron: %w", err)
	}

	kept := patron.TopMemoriesURL[:0]
	found := false
	for _, p := range patron.TopMemoriesURL {
		if p == path {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("memory not found: %s", path)
	}

	patron.TopMemoriesURL = kept
	patron.UpdatedAt = time.Now()
	err = s.patronRepository.Upsert(patron)
	if err != nil {
		return fmt.Errorf("failed to update patron: %w", err)
	}

	err = s.storage.Delete(ctx, path)
	if err != nil {
		slog.Warn("failed to delete memory from storage", "error", err, "path", path)
	}

	return nil
}

// Recent lists the newest patron records for the admin dashboard.
func (s *PatronService) Recent(ctx context.Context, limit int) ([]*model.Patron, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.patronRepository.Recent(ctx, limit)
}
