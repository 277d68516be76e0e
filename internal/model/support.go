package model

import (
	"time"
)

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

// SupportTicket is a message from the public contact form.
// Visitors do not have to be signed in, so there is no user link.
type SupportTicket struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Subject   string     `db:"subject"`
	Message   string     `db:"message"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	ClosedAt  *time.Time `db:"closed_at"`
}
