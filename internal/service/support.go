package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/validation"
)

var (
	ErrInvalidTicket  = errors.New("name, email, subject and message are required")
	ErrTicketNotFound = errors.New("support ticket not found")
)

type SupportService struct {
	supportRepository repository.SupportRepository
	emailService      *EmailService
}

func NewSupportService(supportRepository repository.SupportRepository, emailService *EmailService) *SupportService {
	return &SupportService{
		supportRepository: supportRepository,
		emailService:      emailService,
	}
}

// Submit files a contact form message and notifies the support inbox.
func (s *SupportService) Submit(name, email, subject, message string) (*model.SupportTicket, error) {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if name == "" || subject == "" || message == "" {
		return nil, ErrInvalidTicket
	}
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidTicket
	}

	ticket := &model.SupportTicket{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.TrimSpace(strings.ToLower(email)),
		Subject:   subject,
		Message:   message,
		Status:    model.TicketStatusOpen,
		CreatedAt: time.Now(),
	}

	err = s.supportRepository.Create(ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to store ticket: %w", err)
	}

	err = s.emailService.SendSupportTicketEmail(ticket.ID, ticket.Name, ticket.Email, ticket.Subject, ticket.Message)
	if err != nil {
		slog.Warn("failed to forward support ticket", "error", err, "ticket_id", ticket.ID)
	}

	slog.Info("support ticket filed", "ticket_id", ticket.ID)
	return ticket, nil
}

// Open lists open tickets for the admin view, oldest first.
func (s *SupportService) Open() ([]*model.SupportTicket, error) {
	return s.supportRepository.Open()
}

// Close marks a ticket resolved.
func (s *SupportService) Close(ticketID string) error {
	err := s.supportRepository.Close(ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return ErrTicketNotFound
		}
		return fmt.Errorf("failed to close ticket: %w", err)
	}
	return nil
}
