package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/validation"
)

var (
	ErrNomineeNotFound  = errors.New("nominee not found")
	ErrNomineeLimit     = errors.New("nominee limit reached for current plan")
	ErrInvalidNominee   = errors.New("nominee name and email are required")
	ErrUnknownPermGrant = errors.New("unknown permission key")
)

var validPermissions = map[string]bool{
	model.PermViewWishes:     true,
	model.PermViewDocuments:  true,
	model.PermReceiveLetters: true,
}

type NomineeService struct {
	nomineeRepository repository.NomineeRepository
	billingService    *BillingService
}

func NewNomineeService(nomineeRepository repository.NomineeRepository, billingService *BillingService) *NomineeService {
	return &NomineeService{
		nomineeRepository: nomineeRepository,
		billingService:    billingService,
	}
}

func (s *NomineeService) Create(userID, name, email, relationship string, permissions map[string]bool) (*model.Nominee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidNominee
	}
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidNominee
	}
	err = validatePermissions(permissions)
	if err != nil {
		return nil, err
	}

	plan, err := s.billingService.CurrentPlan(userID)
	if err != nil {
		return nil, err
	}
	if plan.NomineeLimit >= 0 {
		count, err := s.nomineeRepository.CountByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count nominees: %w", err)
		}
		if count >= plan.NomineeLimit {
			return nil, ErrNomineeLimit
		}
	}

	now := time.Now()
	nominee := &model.Nominee{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		Email:        strings.TrimSpace(strings.ToLower(email)),
		Relationship: relationship,
		Permissions:  permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.nomineeRepository.Create(nominee)
	if err != nil {
		return nil, fmt.Errorf("failed to create nominee: %w", err)
	}

	return nominee, nil
}

func (s *NomineeService) List(userID string) ([]*model.Nominee, error) {
	return s.nomineeRepository.ByUserID(userID)
}

func (s *NomineeService) Update(userID, nomineeID, name, email, relationship string, permissions map[string]bool) (*model.Nominee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidNominee
	}
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidNominee
	}
	err = validatePermissions(permissions)
	if err != nil {
		return nil, err
	}

	nominee, err := s.nomineeRepository.ByID(userID, nomineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNomineeNotFound) {
			return nil, ErrNomineeNotFound
		}
		return nil, fmt.Errorf("failed to load nominee: %w", err)
	}

	nominee.Name = name
	nominee.Email = strings.TrimSpace(strings.ToLower(email))
	nominee.Relationship = relationship
	nominee.Permissions = permissions
	nominee.UpdatedAt = time.Now()

	err = s.nomineeRepository.Update(nominee)
	if err != nil {
		return nil, fmt.Errorf("failed to update nominee: %w", err)
	}

	return nominee, nil
}

func (s *NomineeService) Delete(userID, nomineeID string) error {
	err := s.nomineeRepository.Delete(userID, nomineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNomineeNotFound) {
			return ErrNomineeNotFound
		}
		return fmt.Errorf("failed to delete nominee: %w", err)
	}
	return nil
}

func validatePermissions(permissions map[string]bool) error {
	for key := range permissions {
		if !validPermissions[key] {
			return fmt.Errorf("%w: %s", ErrUnknownPermGrant, key)
		}
	}
	return nil
}
