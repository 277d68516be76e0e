package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/service"
)

type fakePaymentRepository struct {
	payment *model.Payment
	status  string
}

func (f *fakePaymentRepository) Create(payment *model.Payment) error { return nil }
func (f *fakePaymentRepository) ByID(id string) (*model.Payment, error) {
	return f.payment, nil
}
func (f *fakePaymentRepository) ByOrderID(orderID string) (*model.Payment, error) {
	return f.payment, nil
}
func (f *fakePaymentRepository) ByUserID(userID string) ([]*model.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepository) UpdateStatus(id, status, paymentID string) error {
	f.status = status
	return nil
}
func (f *fakePaymentRepository) LatestVerified(userID string) (*model.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepository) DeleteByUserID(userID string) error { return nil }

type fakeUserRepository struct{}

func (fakeUserRepository) Create(user *model.User) error { return nil }
func (fakeUserRepository) ByID(id string) (*model.User, error) {
	return &model.User{ID: id, Email: "asha@example.com", Name: "Asha"}, nil
}
func (fakeUserRepository) ByEmail(email string) (*model.User, error) { return nil, nil }
func (fakeUserRepository) UpdatePassword(id, passwordHash string) error { return nil }
func (fakeUserRepository) Delete(id string) error                      { return nil }

type fakeProvider struct {
	valid bool
}

func (f *fakeProvider) CreateOrder(amount int64, currency, receipt string) (string, error) {
	return "order_test_1", nil
}
func (f *fakeProvider) VerifySignature(orderID, paymentID, signature string) bool { return f.valid }
func (f *fakeProvider) Name() string                                              { return "fake" }

func verifyRequest(t *testing.T) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"razorpay_order_id":   "order_test_1",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  "sig",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/billing/verify", bytes.NewReader(body))
	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1", Email: "asha@example.com"})
	return req.WithContext(ctx)
}

func newBillingFixture(validSignature bool) (*billingHandler, *fakePaymentRepository) {
	payments := &fakePaymentRepository{
		payment: &model.Payment{ID: "pay-row-1", UserID: "user-1", PlanID: model.PlanStandard, OrderID: "order_test_1"},
	}
	email := service.NewEmailService("", "noreply@test", "support@test", "", "http://localhost", "TestApp", true)
	billing := service.NewBillingService(payments, fakeUserRepository{}, &fakeProvider{valid: validSignature}, email, nil)
	return NewBillingHandler(billing), payments
}

func TestVerifyPaymentOK(t *testing.T) {
	h, payments := newBillingFixture(true)

	w := httptest.NewRecorder()
	h.VerifyPayment(w, verifyRequest(t))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.PaymentStatusVerified, payments.status)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.PaymentStatusVerified, resp["status"])
	assert.Equal(t, model.PlanStandard, resp["plan_id"])
}

func TestVerifyPaymentMismatchReturns202(t *testing.T) {
	h, payments := newBillingFixture(false)

	w := httptest.NewRecorder()
	h.VerifyPayment(w, verifyRequest(t))

	assert.Equal(t, http.StatusAccepted, w.Code, "a signature mismatch is not a hard failure, the money may be captured")
	assert.Equal(t, model.PaymentStatusNeedsReview, payments.status)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.PaymentStatusNeedsReview, resp["status"])
	assert.Equal(t, "pay_abc", resp["payment_id"], "the patron needs the payment id to quote to support")
}

func TestVerifyPaymentMissingOrderID(t *testing.T) {
	h, _ := newBillingFixture(true)

	req := httptest.NewRequest(http.MethodPost, "/api/billing/verify", bytes.NewReader([]byte(`{}`)))
	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1"})

	w := httptest.NewRecorder()
	h.VerifyPayment(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
