package payment

import (
	"log/slog"

	"github.com/google/uuid"
)

// DevProvider fakes the gateway for local development. Orders get random
// IDs and every signature verifies.
type DevProvider struct{}

func NewDevProvider() *DevProvider {
	return &DevProvider{}
}

func (p *DevProvider) CreateOrder(amount int64, currency, receipt string) (string, error) {
	orderID := "order_dev_" + uuid.New().String()
	slog.Info("order created (dev mode)", "order_id", orderID, "amount", amount, "currency", currency)
	return orderID, nil
}

func (p *DevProvider) VerifySignature(orderID, paymentID, signature string) bool {
	slog.Info("signature verified (dev mode)", "order_id", orderID, "payment_id", paymentID)
	return true
}

func (p *DevProvider) Name() string {
	return "dev"
}
