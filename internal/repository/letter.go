package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type LetterRepository interface {
	Create(letter *model.Letter) error
	ByID(userID, letterID string) (*model.Letter, error)
	ByUserID(userID string) ([]*model.Letter, error)
	CountByUserID(userID string) (int, error)
	Update(letter *model.Letter) error
	Delete(userID, letterID string) error
	DeleteByUserID(userID string) error
}

type letterRepository struct {
	db *sqlx.DB
}

func NewLetterRepository(db *sqlx.DB) LetterRepository {
	return &letterRepository{db: db}
}

func (r *letterRepository) Create(letter *model.Letter) error {
	query := `INSERT INTO letters (id, user_id, recipient_name, title, content, delivery_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		letter.ID,
		letter.UserID,
		letter.RecipientName,
		letter.Title,
		letter.Content,
		letter.DeliveryDate,
		letter.Status,
		letter.CreatedAt,
		letter.UpdatedAt,
	)

	return err
}

func (r *letterRepository) ByID(userID, letterID string) (*model.Letter, error) {
	letter := &model.Letter{}
	query := `SELECT * FROM letters WHERE id = $1 AND user_id = $2`

	err := r.db.Get(letter, query, letterID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrLetterNotFound
	}

	return letter, err
}

func (r *letterRepository) ByUserID(userID string) ([]*model.Letter, error) {
	var letters []*model.Letter
	query := `SELECT * FROM letters WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&letters, query, userID)
	if err != nil {
		return nil, err
	}

	return letters, nil
}

func (r *letterRepository) CountByUserID(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM letters WHERE user_id = $1`, userID)
	return count, err
}

func (r *letterRepository) Update(letter *model.Letter) error {
	query := `UPDATE letters SET recipient_name = $1, title = $2, content = $3, delivery_date = $4, status = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		letter.RecipientName,
		letter.Title,
		letter.Content,
		letter.DeliveryDate,
		letter.Status,
		letter.UpdatedAt,
		letter.ID,
		letter.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLetterNotFound
	}

	return nil
}

func (r *letterRepository) Delete(userID, letterID string) error {
	result, err := r.db.Exec(`DELETE FROM letters WHERE id = $1 AND user_id = $2`, letterID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLetterNotFound
	}

	return nil
}

func (r *letterRepository) DeleteByUserID(userID string) error {
	_, err := r.db.Exec(`DELETE FROM letters WHERE user_id = $1`, userID)
	return err
}
