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
	ErrInvalidWish  = errors.New("wish title and a valid type are required")
	ErrWishNotFound = errors.New("wish not found")
)

type WishService struct {
	wishRepository repository.WishRepository
}

func NewWishService(wishRepository repository.WishRepository) *WishService {
	return &WishService{wishRepository: wishRepository}
}

func (s *WishService) Create(userID, title, description, wishType string) (*model.Wish, error) {
	title = strings.TrimSpace(title)
	if title == "" || !model.ValidWishType(wishType) {
		return nil, ErrInvalidWish
	}

	now := time.Now()
	wish := &model.Wish{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        wishType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.wishRepository.Create(wish)
	if err != nil {
		return nil, fmt.Errorf("failed to create wish: %w", err)
	}

	return wish, nil
}

func (s *WishService) List(userID string) ([]*model.Wish, error) {
	return s.wishRepository.ByUserID(userID)
}

func (s *WishService) Update(userID, wishID, title, description, wishType string) (*model.Wish, error) {
	title = strings.TrimSpace(title)
	if title == "" || !model.ValidWishType(wishType) {
		return nil, ErrInvalidWish
	}

	wish, err := s.wishRepository.ByID(userID, wishID)
	if err != nil {
		if errors.Is(err, repository.ErrWishNotFound) {
			return nil, ErrWishNotFound
		}
		return nil, fmt.Errorf("failed to load wish: %w", err)
	}

	wish.Title = title
	wish.Description = description
	wish.Type = wishType
	wish.UpdatedAt = time.Now()

	err = s.wishRepository.Update(wish)
	if err != nil {
		return nil, fmt.Errorf("failed to update wish: %w", err)
	}

	return wish, nil
}

func (s *WishService) Delete(userID, wishID string) error {
	err := s.wishRepository.Delete(userID, wishID)
	if err != nil {
		if errors.Is(err, repository.ErrWishNotFound) {
			return ErrWishNotFound
		}
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	return nil
}
