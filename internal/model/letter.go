package model

import (
	"time"
)

const (
	LetterStatusDraft     = "draft"
	LetterStatusScheduled = "scheduled"
)

// Letter is a message written for a loved one, optionally scheduled for
// delivery on a future date.
type Letter struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	RecipientName string     `db:"recipient_name"`
	Title         string     `db:"title"`
	Content       string     `db:"content"`
	DeliveryDate  *time.Time `db:"delivery_date"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
