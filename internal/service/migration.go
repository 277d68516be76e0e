package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/bookmylastwishes/portal/internal/metrics"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/storage"
)

// MigrationService promotes a pre-signup pledge into the patron's permanent
// record on their first sign-in. It never surfaces errors to the login flow:
// a failed run logs, releases its claim and waits for the next sign-in.
type MigrationService struct {
	sessionRepository    repository.SessionRepository
	tempPatronRepository repository.TempPatronRepository
	patronRepository     repository.PatronRepository
	storage              storage.Storage
	metrics              *metrics.Collector
}

func NewMigrationService(
	sessionRepository repository.SessionRepository,
	tempPatronRepository repository.TempPatronRepository,
	patronRepository repository.PatronRepository,
	storage storage.Storage,
	metrics *metrics.Collector,
) *MigrationService {
	return &MigrationService{
		sessionRepository:    sessionRepository,
		tempPatronRepository: tempPatronRepository,
		patronRepository:     patronRepository,
		storage:              storage,
		metrics:              metrics,
	}
}

// RunForSession runs the migration at most once per session. It is called
// right after login and signup, and nowhere else. Page loads within an
// existing session never reach it.
//
// Two guards stack here. The session marker stops repeat runs within one
// session. The temp row claim stops concurrent runs from two devices signed
// in to the same account.
func (s *MigrationService) RunForSession(ctx context.Context, user *model.User, sessionID string) {
	first, err := s.sessionRepository.MarkMigrated(sessionID)
	if err != nil {
		slog.Error("migration: failed to mark session", "error", err, "session_id", sessionID)
		return
	}
	if !first {
		return
	}

	tp, err := s.tempPatronRepository.ByEmail(user.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrTempPatronNotFound) {
			slog.Error("migration: temp lookup failed", "error", err, "user_id", user.ID)
		}
		return
	}

	err = s.tempPatronRepository.Claim(tp.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTempPatronClaimed) {
			slog.Info("migration: temp record already claimed", "user_id", user.ID)
		} else {
			slog.Error("migration: claim failed", "error", err, "user_id", user.ID)
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordMigrationRun()
	}

	moved := s.moveFiles(ctx, user.ID, tp.FormData.TopMemoriesURL)

	patron := patronFromPayload(user, &tp.FormData, moved)
	err = s.patronRepository.Upsert(patron)
	if err != nil {
		// Release the claim so the next sign-in retries instead of the
		// pledge silently vanishing.
		slog.Error("migration: patron upsert failed", "error", err, "user_id", user.ID)
		if s.metrics != nil {
			s.metrics.RecordMigrationFailure()
		}
		relErr := s.tempPatronRepository.ReleaseClaim(tp.ID)
		if relErr != nil {
			slog.Error("migration: claim release failed", "error", relErr, "temp_id", tp.ID)
		}
		return
	}

	err = s.tempPatronRepository.Delete(tp.ID)
	if err != nil {
		slog.Warn("migration: temp cleanup failed", "error", err, "temp_id", tp.ID)
	}

	if s.metrics != nil {
		s.metrics.RecordFilesMigrated(len(moved))
	}
	slog.Info("migration completed", "user_id", user.ID, "files", len(moved))
}

// moveFiles relocates temp uploads into the patron's folder in parallel.
// Partial failure is tolerated: a file that cannot be moved is dropped from
// the record rather than blocking the rest.
func (s *MigrationService) moveFiles(ctx context.Context, userID string, tempPaths []string) []string {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		moved []string
	)

	for _, src := range tempPaths {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()

			dst := MemoryPath(userID, path.Base(src))
			err := s.storage.Move(ctx, src, dst)
			if err != nil {
				slog.Warn("migration: file move failed", "error", err, "src", src)
				return
			}

			mu.Lock()
			moved = append(moved, dst)
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return moved
}

func patronFromPayload(user *model.User, p *model.PledgePayload, memoryPaths []string) *model.Patron {
	return &model.Patron{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         p.FullName,
		DOB:              p.DOB,
		Sex:              p.Sex,
		Religion:         p.Religion,
		Occupation:       p.Occupation,
		Address:          p.Address,
		ContactNumber:    p.ContactNumber,
		RelativesContact: p.RelativesContact,
		ServiceGrade:     p.ServiceGrade,
		MemorableDeeds:   p.MemorableDeeds,
		TopMemoriesURL:   memoryPaths,
		UpdatedAt:        time.Now(),
	}
}

// TempPath returns the storage key for a pre-signup upload.
func TempPath(tempID, filename string) string {
	return fmt.Sprintf("temp/%s/%s", tempID, filename)
}

// MemoryPath returns the storage key for a patron's memory upload.
func MemoryPath(userID, filename string) string {
	return fmt.Sprintf("memories/%s/%s", userID, filename)
}

// AvatarPath returns the storage key for a patron's profile photo.
func AvatarPath(userID string) string {
	return fmt.Sprintf("memories/%s/avatar.png", userID)
}

// DocumentPath returns the storage key for a vault document. The timestamp
// prefix keeps same-named uploads from overwriting each other.
func DocumentPath(userID, filename string) string {
	return fmt.Sprintf("documents/%s/%d_%s", userID, time.Now().Unix(), filename)
}
