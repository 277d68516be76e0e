package model

import (
	"fmt"
	"time"
)

const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

const (
	PaymentStatusCreated     = "created"
	PaymentStatusVerified    = "verified"
	PaymentStatusNeedsReview = "needs_review"
	PaymentStatusFailed      = "failed"
)

// Plan is one subscription tier. Amounts are yearly, in paisa (INR minor
// units), matching what the checkout widget is handed.
type Plan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	YearlyAmount int64  `json:"yearly_amount"`
	Currency     string `json:"currency"`
	StorageGB    int    `json:"storage_gb"`
	LetterLimit  int    `json:"letter_limit"`  // -1 = unlimited
	NomineeLimit int    `json:"nominee_limit"` // -1 = unlimited
}

// Plans is the catalog, cheapest first.
var Plans = []Plan{
	{
		ID:           PlanBasic,
		Name:         "Basic",
		Description:  "For individuals starting their legacy journey.",
		YearlyAmount: 0,
		Currency:     "INR",
		StorageGB:    1,
		LetterLimit:  3,
		NomineeLimit: 1,
	},
	{
		ID:           PlanStandard,
		Name:         "Standard",
		Description:  "For those who want more storage and control.",
		YearlyAmount: 2999 * 100,
		Currency:     "INR",
		StorageGB:    10,
		LetterLimit:  10,
		NomineeLimit: 3,
	},
	{
		ID:           PlanPremium,
		Name:         "Premium",
		Description:  "The ultimate plan for complete peace of mind.",
		YearlyAmount: 7999 * 100,
		Currency:     "INR",
		StorageGB:    100,
		LetterLimit:  -1,
		NomineeLimit: -1,
	},
}

func PlanByID(id string) (Plan, error) {
	for _, p := range Plans {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("unknown plan: %s", id)
}

// Payment records one checkout attempt against the gateway. OrderID is the
// server-created gateway order; PaymentID and Signature arrive from the
// checkout widget's completion callback.
type Payment struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	PlanID    string    `db:"plan_id"`
	OrderID   string    `db:"order_id"`
	PaymentID string    `db:"payment_id"`
	Amount    int64     `db:"amount"`
	Currency  string    `db:"currency"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *Payment) FormatAmount() string {
	return fmt.Sprintf("₹%.0f/year", float64(p.Amount)/100.0)
}
