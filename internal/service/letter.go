package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
)

var (
	ErrLetterNotFound = errors.New("letter not found")
	ErrLetterLimit    = errors.New("letter limit reached for current plan")
	ErrInvalidLetter  = errors.New("letter recipient and title are required")
)

type LetterService struct {
	letterRepository repository.LetterRepository
	billingService   *BillingService
}

func NewLetterService(letterRepository repository.LetterRepository, billingService *BillingService) *LetterService {
	return &LetterService{
		letterRepository: letterRepository,
		billingService:   billingService,
	}
}

func (s *LetterService) Create(userID, recipientName, title, content string, deliveryDate *time.Time) (*model.Letter, error) {
	recipientName = strings.TrimSpace(recipientName)
	title = strings.TrimSpace(title)
	if recipientName == "" || title == "" {
		return nil, ErrInvalidLetter
	}

	plan, err := s.billingService.CurrentPlan(userID)
	if err != nil {
		return nil, err
	}
	if plan.LetterLimit >= 0 {
		count, err := s.letterRepository.CountByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count letters: %w", err)
		}
		if count >= plan.LetterLimit {
			return nil, ErrLetterLimit
		}
	}

	now := time.Now()
	letter := &model.Letter{
		ID:            uuid.New().String(),
		UserID:        userID,
		RecipientName: recipientName,
		Title:         title,
		Content:       content,
		DeliveryDate:  deliveryDate,
		Status:        letterStatus(deliveryDate),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.letterRepository.Create(letter)
	if err != nil {
		return nil, fmt.Errorf("failed to create letter: %w", err)
	}

	return letter, nil
}

func (s *LetterService) List(userID string) ([]*model.Letter, error) {
	return s.letterRepository.ByUserID(userID)
}

func (s *LetterService) Update(userID, letterID, recipientName, title, content string, deliveryDate *time.Time) (*model.Letter, error) {
	recipientName = strings.TrimSpace(recipientName)
	title = strings.TrimSpace(title)
	if recipientName == "" || title == "" {
		return nil, ErrInvalidLetter
	}

	letter, err := s.letterRepository.ByID(userID, letterID)
	if err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return nil, ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to load letter: %w", err)
	}

	letter.RecipientName = recipientName
	letter.Title = title
	letter.Content = content
	letter.DeliveryDate = deliveryDate
	letter.Status = letterStatus(deliveryDate)
	letter.UpdatedAt = time.Now()

	err = s.letterRepository.Update(letter)
	if err != nil {
		return nil, fmt.Errorf("failed to update letter: %w", err)
	}

	return letter, nil
}

func (s *LetterService) Delete(userID, letterID string) error {
	err := s.letterRepository.Delete(userID, letterID)
	if err != nil {
		if errors.Is(err, repository.ErrLetterNotFound) {
			return ErrLetterNotFound
		}
		return fmt.Errorf("failed to delete letter: %w", err)
	}
	return nil
}

// letterStatus derives status from the delivery date. A dated letter is
// scheduled; an undated one stays a draft.
func letterStatus(deliveryDate *time.Time) string {
	if deliveryDate != nil {
		return model.LetterStatusScheduled
	}
	return model.LetterStatusDraft
}
