package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookmylastwishes/portal/internal/metrics"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/service/payment"
)

var (
	ErrFreePlan       = errors.New("plan does not require payment")
	ErrPaymentPending = errors.New("payment could not be confirmed")
)

type BillingService struct {
	paymentRepository repository.PaymentRepository
	userRepository    repository.UserRepository
	provider          payment.Provider
	emailService      *EmailService
	metrics           *metrics.Collector
}

func NewBillingService(
	paymentRepository repository.PaymentRepository,
	userRepository repository.UserRepository,
	provider payment.Provider,
	emailService *EmailService,
	metrics *metrics.Collector,
) *BillingService {
	return &BillingService{
		paymentRepository: paymentRepository,
		userRepository:    userRepository,
		provider:          provider,
		emailService:      emailService,
		metrics:           metrics,
	}
}

// CreateOrder opens a gateway order for the chosen plan and records it.
func (s *BillingService) CreateOrder(userID, planID string) (*model.Payment, error) {
	plan, err := model.PlanByID(planID)
	if err != nil {
		return nil, err
	}
	if plan.YearlyAmount == 0 {
		return nil, ErrFreePlan
	}

	receipt := uuid.New().String()
	orderID, err := s.provider.CreateOrder(plan.YearlyAmount, plan.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	now := time.Now()
	pay := &model.Payment{
		ID:        receipt,
		UserID:    userID,
		PlanID:    plan.ID,
		OrderID:   orderID,
		Amount:    plan.YearlyAmount,
		Currency:  plan.Currency,
		Status:    model.PaymentStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.paymentRepository.Create(pay)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	slog.Info("payment order created", "user_id", userID, "plan", plan.ID, "order_id", orderID)
	return pay, nil
}

// VerifyPayment handles the checkout completion callback. A valid signature
// activates the plan. An invalid or missing signature is NOT treated as a
// failure: the gateway may still have captured the money, so the payment is
// parked for manual review and the patron is told to quote the payment ID
// to support.
func (s *BillingService) VerifyPayment(userID, orderID, paymentID, signature string) (*model.Payment, error) {
	pay, err := s.paymentRepository.ByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("unknown order: %w", err)
	}
	if pay.UserID != userID {
		return nil, fmt.Errorf("order does not belong to caller")
	}

	if s.provider.VerifySignature(orderID, paymentID, signature) {
		err = s.paymentRepository.UpdateStatus(pay.ID, model.PaymentStatusVerified, paymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to update payment: %w", err)
		}
		pay.Status = model.PaymentStatusVerified
		pay.PaymentID = paymentID

		if s.metrics != nil {
			s.metrics.RecordPaymentVerified()
		}
		s.notifyVerified(pay)
		slog.Info("payment verified", "user_id", userID, "order_id", orderID)
		return pay, nil
	}

	err = s.paymentRepository.UpdateStatus(pay.ID, model.PaymentStatusNeedsReview, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	pay.Status = model.PaymentStatusNeedsReview
	pay.PaymentID = paymentID

	if s.metrics != nil {
		s.metrics.RecordPaymentAmbiguous()
	}
	s.notifyNeedsReview(pay)
	slog.Warn("payment signature mismatch, parked for review", "user_id", userID, "order_id", orderID, "payment_id", paymentID)
	return pay, ErrPaymentPending
}

func (s *BillingService) notifyVerified(pay *model.Payment) {
	user, err := s.userRepository.ByID(pay.UserID)
	if err != nil || user == nil {
		return
	}
	plan, err := model.PlanByID(pay.PlanID)
	if err != nil {
		return
	}
	err = s.emailService.SendPaymentVerifiedEmail(user.Email, user.Name, plan.Name)
	if err != nil {
		slog.Warn("failed to send payment verified email", "error", err, "user_id", user.ID)
	}
}

func (s *BillingService) notifyNeedsReview(pay *model.Payment) {
	user, err := s.userRepository.ByID(pay.UserID)
	if err != nil || user == nil {
		return
	}
	err = s.emailService.SendPaymentReviewEmail(user.Email, user.Name, pay.PaymentID)
	if err != nil {
		slog.Warn("failed to send payment review email", "error", err, "user_id", user.ID)
	}
}

// CurrentPlan resolves the user's active plan from their latest verified
// payment. No verified payment means the free Basic plan.
func (s *BillingService) CurrentPlan(userID string) (model.Plan, error) {
	pay, err := s.paymentRepository.LatestVerified(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return model.PlanByID(model.PlanBasic)
		}
		return model.Plan{}, fmt.Errorf("failed to load payments: %w", err)
	}

	plan, err := model.PlanByID(pay.PlanID)
	if err != nil {
		// Plan was retired from the catalog; fall back to Basic.
		slog.Warn("payment references unknown plan", "plan_id", pay.PlanID, "user_id", userID)
		return model.PlanByID(model.PlanBasic)
	}
	return plan, nil
}

// History lists the user's payments, newest first.
func (s *BillingService) History(userID string) ([]*model.Payment, error) {
	return s.paymentRepository.ByUserID(userID)
}

// Plans returns the public plan catalog.
func (s *BillingService) Plans() []model.Plan {
	return model.Plans
}
