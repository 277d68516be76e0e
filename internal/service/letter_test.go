package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
)

func billingOnPlan(planID string) *BillingService {
	payments := &mockPaymentRepository{
		latestVerifiedFn: func(userID string) (*model.Payment, error) {
			if planID == model.PlanBasic {
				return nil, repository.ErrPaymentNotFound
			}
			return &model.Payment{UserID: userID, PlanID: planID, Status: model.PaymentStatusVerified}, nil
		},
	}
	return NewBillingService(payments, &mockUserRepository{}, &mockProvider{}, testEmailService(), nil)
}

func TestLetterStatusFollowsDeliveryDate(t *testing.T) {
	var created *model.Letter
	letters := &mockLetterRepository{
		createFn: func(l *model.Letter) error {
			created = l
			return nil
		},
	}

	svc := NewLetterService(letters, billingOnPlan(model.PlanBasic))

	_, err := svc.Create("user-1", "Meera", "For your wedding day", "My dearest...", nil)
	require.NoError(t, err)
	assert.Equal(t, model.LetterStatusDraft, created.Status, "an undated letter stays a draft")

	date := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create("user-1", "Meera", "For your wedding day", "My dearest...", &date)
	require.NoError(t, err)
	assert.Equal(t, model.LetterStatusScheduled, created.Status)
}

func TestLetterLimitOnBasicPlan(t *testing.T) {
	letters := &mockLetterRepository{
		countByUserIDFn: func(userID string) (int, error) { return 3, nil },
	}

	svc := NewLetterService(letters, billingOnPlan(model.PlanBasic))
	_, err := svc.Create("user-1", "Meera", "One more", "...", nil)
	assert.ErrorIs(t, err, ErrLetterLimit)
}

func TestLetterUnlimitedOnPremium(t *testing.T) {
	counted := false
	letters := &mockLetterRepository{
		countByUserIDFn: func(userID string) (int, error) {
			counted = true
			return 500, nil
		},
	}

	svc := NewLetterService(letters, billingOnPlan(model.PlanPremium))
	_, err := svc.Create("user-1", "Meera", "Letter 501", "...", nil)
	require.NoError(t, err)
	assert.False(t, counted, "an unlimited plan should not bother counting")
}

func TestLetterCreateRequiresRecipientAndTitle(t *testing.T) {
	svc := NewLetterService(&mockLetterRepository{}, billingOnPlan(model.PlanBasic))

	_, err := svc.Create("user-1", "  ", "Title", "...", nil)
	assert.ErrorIs(t, err, ErrInvalidLetter)

	_, err = svc.Create("user-1", "Meera", "", "...", nil)
	assert.ErrorIs(t, err, ErrInvalidLetter)
}

func TestLetterUpdateRecomputesStatus(t *testing.T) {
	date := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	var updated *model.Letter

	letters := &mockLetterRepository{
		byIDFn: func(userID, letterID string) (*model.Letter, error) {
			return &model.Letter{
				ID:           letterID,
				UserID:       userID,
				Title:        "Old title",
				DeliveryDate: &date,
				Status:       model.LetterStatusScheduled,
			}, nil
		},
		updateFn: func(l *model.Letter) error {
			updated = l
			return nil
		},
	}

	svc := NewLetterService(letters, billingOnPlan(model.PlanBasic))
	_, err := svc.Update("user-1", "letter-1", "Meera", "New title", "...", nil)
	require.NoError(t, err)

	assert.Equal(t, model.LetterStatusDraft, updated.Status, "clearing the date turns it back into a draft")
}

func TestNomineeLimitOnBasicPlan(t *testing.T) {
	nominees := &mockNomineeRepository{
		countByUserIDFn: func(userID string) (int, error) { return 1, nil },
	}

	svc := NewNomineeService(nominees, billingOnPlan(model.PlanBasic))
	_, err := svc.Create("user-1", "Rahul", "rahul@example.com", "son", map[string]bool{model.PermViewWishes: true})
	assert.ErrorIs(t, err, ErrNomineeLimit)
}

func TestNomineeRejectsUnknownPermission(t *testing.T) {
	svc := NewNomineeService(&mockNomineeRepository{}, billingOnPlan(model.PlanPremium))
	_, err := svc.Create("user-1", "Rahul", "rahul@example.com", "son", map[string]bool{"root_access": true})
	assert.ErrorIs(t, err, ErrUnknownPermGrant)
}

func TestNomineeCreate(t *testing.T) {
	var created *model.Nominee
	nominees := &mockNomineeRepository{
		createFn: func(n *model.Nominee) error {
			created = n
			return nil
		},
	}

	svc := NewNomineeService(nominees, billingOnPlan(model.PlanStandard))
	_, err := svc.Create("user-1", "Rahul", "rahul@example.com", "son", map[string]bool{
		model.PermViewWishes:     true,
		model.PermReceiveLetters: true,
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "user-1", created.UserID)
	assert.True(t, created.Permissions[model.PermViewWishes])
	assert.False(t, created.Permissions[model.PermViewDocuments])
}
