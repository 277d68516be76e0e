package payment

// Provider defines the interface a payment gateway must implement
type Provider interface {
	// CreateOrder creates a gateway order and returns its ID. The checkout
	// widget on the client is handed this ID to collect the payment.
	CreateOrder(amount int64, currency, receipt string) (string, error)

	// VerifySignature checks the completion callback's signature against
	// the order and payment IDs. False means the payment cannot be
	// confirmed server-side and must go to manual review.
	VerifySignature(orderID, paymentID, signature string) bool

	// Name returns the provider name (e.g., "razorpay")
	Name() string
}
