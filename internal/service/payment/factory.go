package payment

import (
	"fmt"
	"log/slog"

	"github.com/bookmylastwishes/portal/internal/config"
)

// NewProvider creates a payment provider based on configuration. Development
// without gateway keys gets a log-only provider so checkout flows can be
// exercised end to end locally.
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required in production")
		}
		slog.Info("initializing payment provider", "provider", "dev")
		return NewDevProvider(), nil
	}

	slog.Info("initializing payment provider", "provider", "razorpay")
	return NewRazorpayProvider(cfg.RazorpayKeyID, cfg.RazorpayKeySecret), nil
}
