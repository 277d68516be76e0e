package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type SupportRepository interface {
	Create(ticket *model.SupportTicket) error
	ByID(id string) (*model.SupportTicket, error)
	Open() ([]*model.SupportTicket, error)
	Close(id string) error
}

type supportRepository struct {
	db *sqlx.DB
}

func NewSupportRepository(db *sqlx.DB) SupportRepository {
	return &supportRepository{db: db}
}

func (r *supportRepository) Create(ticket *model.SupportTicket) error {
	query := `INSERT INTO support_tickets (id, name, email, subject, message, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		ticket.ID,
		ticket.Name,
		ticket.Email,
		ticket.Subject,
		ticket.Message,
		ticket.Status,
		ticket.CreatedAt,
	)

	return err
}

func (r *supportRepository) ByID(id string) (*model.SupportTicket, error) {
	ticket := &model.SupportTicket{}
	query := `SELECT * FROM support_tickets WHERE id = $1`

	err := r.db.Get(ticket, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}

	return ticket, err
}

func (r *supportRepository) Open() ([]*model.SupportTicket, error) {
	var tickets []*model.SupportTicket
	query := `SELECT * FROM support_tickets WHERE status = $1 ORDER BY created_at ASC`

	err := r.db.Select(&tickets, query, model.TicketStatusOpen)
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *supportRepository) Close(id string) error {
	result, err := r.db.Exec(`UPDATE support_tickets SET status = $1, closed_at = $2 WHERE id = $3`,
		model.TicketStatusClosed, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTicketNotFound
	}

	return nil
}
