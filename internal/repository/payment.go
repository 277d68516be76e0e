package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	ByID(id string) (*model.Payment, error)
	ByOrderID(orderID string) (*model.Payment, error)
	ByUserID(userID string) ([]*model.Payment, error)
	UpdateStatus(id string, status string, paymentID string) error
	LatestVerified(userID string) (*model.Payment, error)
	DeleteByUserID(userID string) error
}

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	query := `INSERT INTO payments (id, user_id, plan_id, order_id, payment_id, amount, currency, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		payment.ID,
		payment.UserID,
		payment.PlanID,
		payment.OrderID,
		payment.PaymentID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	return err
}

func (r *paymentRepository) ByID(id string) (*model.Payment, error) {
	payment := &model.Payment{}
	query := `SELECT * FROM payments WHERE id = $1`

	err := r.db.Get(payment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}

	return payment, err
}

func (r *paymentRepository) ByOrderID(orderID string) (*model.Payment, error) {
	payment := &model.Payment{}
	query := `SELECT * FROM payments WHERE order_id = $1`

	err := r.db.Get(payment, query, orderID)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}

	return payment, err
}

func (r *paymentRepository) ByUserID(userID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	query := `SELECT * FROM payments WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&payments, query, userID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) UpdateStatus(id string, status string, paymentID string) error {
	query := `UPDATE payments SET status = $1, payment_id = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query, status, paymentID, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *paymentRepository) LatestVerified(userID string) (*model.Payment, error) {
	payment := &model.Payment{}
	query := `SELECT * FROM payments WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`

	err := r.db.Get(payment, query, userID, model.PaymentStatusVerified)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}

	return payment, err
}

func (r *paymentRepository) DeleteByUserID(userID string) error {
	_, err := r.db.Exec(`DELETE FROM payments WHERE user_id = $1`, userID)
	return err
}
