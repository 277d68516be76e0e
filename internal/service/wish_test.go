package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmylastwishes/portal/internal/model"
)

func TestWishCreate(t *testing.T) {
	var created *model.Wish
	wishes := &mockWishRepository{
		createFn: func(w *model.Wish) error {
			created = w
			return nil
		},
	}

	svc := NewWishService(wishes)
	wish, err := svc.Create("user-1", "  Scatter my ashes at Rishikesh  ", "By the river", model.WishTypeText)
	require.NoError(t, err)

	assert.Equal(t, "Scatter my ashes at Rishikesh", wish.Title)
	assert.Equal(t, created.ID, wish.ID)
	assert.NotEmpty(t, wish.ID)
}

func TestWishCreateRejectsBadInput(t *testing.T) {
	svc := NewWishService(&mockWishRepository{})

	_, err := svc.Create("user-1", "   ", "", model.WishTypeText)
	assert.ErrorIs(t, err, ErrInvalidWish)

	_, err = svc.Create("user-1", "A wish", "", "hologram")
	assert.ErrorIs(t, err, ErrInvalidWish, "only text, voice and video wishes exist")
}

type mockSupportRepository struct {
	createFn func(ticket *model.SupportTicket) error
	byIDFn   func(id string) (*model.SupportTicket, error)
	openFn   func() ([]*model.SupportTicket, error)
	closeFn  func(id string) error
}

func (m *mockSupportRepository) Create(ticket *model.SupportTicket) error {
	if m.createFn != nil {
		return m.createFn(ticket)
	}
	return nil
}

func (m *mockSupportRepository) ByID(id string) (*model.SupportTicket, error) {
	if m.byIDFn != nil {
		return m.byIDFn(id)
	}
	return nil, nil
}

func (m *mockSupportRepository) Open() ([]*model.SupportTicket, error) {
	if m.openFn != nil {
		return m.openFn()
	}
	return nil, nil
}

func (m *mockSupportRepository) Close(id string) error {
	if m.closeFn != nil {
		return m.closeFn(id)
	}
	return nil
}

func TestSupportSubmit(t *testing.T) {
	var stored *model.SupportTicket
	tickets := &mockSupportRepository{
		createFn: func(ticket *model.SupportTicket) error {
			stored = ticket
			return nil
		},
	}

	svc := NewSupportService(tickets, testEmailService())
	ticket, err := svc.Submit("Rahul", "Rahul@Example.com", "Billing question", "I was charged twice.")
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "rahul@example.com", stored.Email)
	assert.Equal(t, model.TicketStatusOpen, ticket.Status)
}

func TestSupportSubmitRejectsBlankFields(t *testing.T) {
	svc := NewSupportService(&mockSupportRepository{}, testEmailService())

	_, err := svc.Submit("", "rahul@example.com", "Subject", "Message")
	assert.ErrorIs(t, err, ErrInvalidTicket)

	_, err = svc.Submit("Rahul", "not-an-email", "Subject", "Message")
	assert.ErrorIs(t, err, ErrInvalidTicket)

	_, err = svc.Submit("Rahul", "rahul@example.com", "Subject", "   ")
	assert.ErrorIs(t, err, ErrInvalidTicket)
}
