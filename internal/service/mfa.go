package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
)

type MFAService struct {
	mfaRepository repository.MFARepository
	appName       string
}

func NewMFAService(mfaRepository repository.MFARepository, appName string) *MFAService {
	return &MFAService{
		mfaRepository: mfaRepository,
		appName:       appName,
	}
}

// Enroll generates a TOTP secret for the user. The factor stays pending
// until the first valid code confirms the authenticator was set up.
func (s *MFAService) Enroll(userID, accountEmail string) (secret, otpauthURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.appName,
		AccountName: accountEmail,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate totp key: %w", err)
	}

	factor := &model.MFAFactor{
		ID:        uuid.New().String(),
		UserID:    userID,
		Secret:    key.Secret(),
		CreatedAt: time.Now(),
	}

	err = s.mfaRepository.Create(factor)
	if err != nil {
		return "", "", fmt.Errorf("failed to store mfa factor: %w", err)
	}

	slog.Info("mfa enrollment started", "user_id", userID)
	return key.Secret(), key.URL(), nil
}

// Confirm verifies the first code and activates the pending factor.
func (s *MFAService) Confirm(userID, code string) error {
	factor, err := s.mfaRepository.ByUserID(userID)
	if err != nil {
		return fmt.Errorf("no pending mfa factor: %w", err)
	}

	if !totp.Validate(code, factor.Secret) {
		return ErrInvalidTOTPCode
	}

	err = s.mfaRepository.MarkVerified(factor.ID)
	if err != nil {
		return fmt.Errorf("failed to verify mfa factor: %w", err)
	}

	slog.Info("mfa factor verified", "user_id", userID)
	return nil
}

// ValidateCode checks a login code against the user's verified factor.
func (s *MFAService) ValidateCode(userID, code string) error {
	factor, err := s.mfaRepository.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrFactorNotFound) {
			return ErrInvalidTOTPCode
		}
		return fmt.Errorf("failed to get mfa factor: %w", err)
	}

	if !factor.IsVerified() {
		return ErrInvalidTOTPCode
	}

	if !totp.Validate(code, factor.Secret) {
		return ErrInvalidTOTPCode
	}

	return nil
}

// HasVerifiedFactor reports whether the user completed TOTP enrollment.
func (s *MFAService) HasVerifiedFactor(userID string) (bool, error) {
	factor, err := s.mfaRepository.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrFactorNotFound) {
			return false, nil
		}
		return false, err
	}
	return factor.IsVerified(), nil
}

// Disable removes the user's TOTP factor.
func (s *MFAService) Disable(userID string) error {
	err := s.mfaRepository.DeleteByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to remove mfa factor: %w", err)
	}

	slog.Info("mfa disabled", "user_id", userID)
	return nil
}
