package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/storage"
)

// AccountService handles permanent account deletion. The operation is
// irreversible, so the caller must re-authenticate with their password.
type AccountService struct {
	userRepository     repository.UserRepository
	sessionRepository  repository.SessionRepository
	patronRepository   repository.PatronRepository
	wishRepository     repository.WishRepository
	nomineeRepository  repository.NomineeRepository
	letterRepository   repository.LetterRepository
	documentRepository repository.DocumentRepository
	paymentRepository  repository.PaymentRepository
	mfaRepository      repository.MFARepository
	storage            storage.Storage
	authService        *AuthService
	emailService       *EmailService
}

func NewAccountService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	patronRepository repository.PatronRepository,
	wishRepository repository.WishRepository,
	nomineeRepository repository.NomineeRepository,
	letterRepository repository.LetterRepository,
	documentRepository repository.DocumentRepository,
	paymentRepository repository.PaymentRepository,
	mfaRepository repository.MFARepository,
	storage storage.Storage,
	authService *AuthService,
	emailService *EmailService,
) *AccountService {
	return &AccountService{
		userRepository:     userRepository,
		sessionRepository:  sessionRepository,
		patronRepository:   patronRepository,
		wishRepository:     wishRepository,
		nomineeRepository:  nomineeRepository,
		letterRepository:   letterRepository,
		documentRepository: documentRepository,
		paymentRepository:  paymentRepository,
		mfaRepository:      mfaRepository,
		storage:            storage,
		authService:        authService,
		emailService:       emailService,
	}
}

// Delete removes the user and everything they own: pledge record, wishes,
// nominees, letters, vault documents, payments, sessions and every stored
// file. Password re-entry guards against a hijacked session doing this.
func (s *AccountService) Delete(ctx context.Context, userID, password string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = s.authService.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return ErrInvalidCredentials
	}

	// Storage first. If the object deletes fail we stop before touching
	// rows, leaving the account intact for a retry.
	for _, prefix := range []string{
		fmt.Sprintf("memories/%s/", userID),
		fmt.Sprintf("documents/%s/", userID),
	} {
		err = s.storage.DeletePrefix(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to delete stored files: %w", err)
		}
	}

	deletions := []struct {
		name string
		fn   func(string) error
	}{
		{"wishes", s.wishRepository.DeleteByUserID},
		{"nominees", s.nomineeRepository.DeleteByUserID},
		{"letters", s.letterRepository.DeleteByUserID},
		{"documents", s.documentRepository.DeleteByUserID},
		{"payments", s.paymentRepository.DeleteByUserID},
		{"mfa", s.mfaRepository.DeleteByUserID},
		{"patron", s.patronRepository.Delete},
		{"sessions", s.sessionRepository.DeleteByUserID},
	}
	for _, d := range deletions {
		err = d.fn(userID)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", d.name, err)
		}
	}

	err = s.userRepository.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	err = s.emailService.SendAccountDeletedEmail(user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send account deleted email", "error", err, "email", user.Email)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
