package handler

import (
	"errors"
	"net/http"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/service"
)

type billingHandler struct {
	billingService *service.BillingService
}

func NewBillingHandler(billingService *service.BillingService) *billingHandler {
	return &billingHandler{billingService: billingService}
}

func (h *billingHandler) Plans(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.billingService.Plans())
}

func (h *billingHandler) CurrentPlan(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	plan, err := h.billingService.CurrentPlan(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to resolve plan")
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

type createOrderRequest struct {
	PlanID string `json:"plan_id"`
}

func (h *billingHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	payment, err := h.billingService.CreateOrder(user.ID, req.PlanID)
	if err != nil {
		if errors.Is(err, service.ErrFreePlan) {
			respondError(w, http.StatusBadRequest, "basic plan needs no payment")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"order_id": payment.OrderID,
		"amount":   payment.Amount,
		"currency": payment.Currency,
	})
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyPayment closes the checkout loop. An unverifiable signature is not a
// hard failure: the response is 202 with the payment ID the patron should
// quote to support, because the money may have been captured anyway.
func (h *billingHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	err := decodeJSON(r, &req)
	if err != nil || req.OrderID == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	payment, err := h.billingService.VerifyPayment(user.ID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		if errors.Is(err, service.ErrPaymentPending) {
			respondJSON(w, http.StatusAccepted, map[string]string{
				"status":     model.PaymentStatusNeedsReview,
				"payment_id": payment.PaymentID,
				"message":    "we could not confirm the payment automatically; contact support and quote the payment id",
			})
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  payment.Status,
		"plan_id": payment.PlanID,
	})
}

func (h *billingHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	payments, err := h.billingService.History(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	respondJSON(w, http.StatusOK, payments)
}
