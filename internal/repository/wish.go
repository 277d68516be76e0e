package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type WishRepository interface {
	Create(wish *model.Wish) error
	ByID(userID, wishID string) (*model.Wish, error)
	ByUserID(userID string) ([]*model.Wish, error)
	Update(wish *model.Wish) error
	Delete(userID, wishID string) error
	DeleteByUserID(userID string) error
}

type wishRepository struct {
	db *sqlx.DB
}

func NewWishRepository(db *sqlx.DB) WishRepository {
	return &wishRepository{db: db}
}

func (r *wishRepository) Create(wish *model.Wish) error {
	query := `INSERT INTO wishes (id, user_id, title, description, type, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		wish.ID,
		wish.UserID,
		wish.Title,
		wish.Description,
		wish.Type,
		wish.CreatedAt,
		wish.UpdatedAt,
	)

	return err
}

func (r *wishRepository) ByID(userID, wishID string) (*model.Wish, error) {
	wish := &model.Wish{}
	query := `SELECT * FROM wishes WHERE id = $1 AND user_id = $2`

	err := r.db.Get(wish, query, wishID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrWishNotFound
	}

	return wish, err
}

func (r *wishRepository) ByUserID(userID string) ([]*model.Wish, error) {
	var wishes []*model.Wish
	query := `SELECT * FROM wishes WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&wishes, query, userID)
	if err != nil {
		return nil, err
	}

	return wishes, nil
}

func (r *wishRepository) Update(wish *model.Wish) error {
	query := `UPDATE wishes SET title = $1, description = $2, type = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		wish.Title,
		wish.Description,
		wish.Type,
		wish.UpdatedAt,
		wish.ID,
		wish.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWishNotFound
	}

	return nil
}

func (r *wishRepository) Delete(userID, wishID string) error {
	result, err := r.db.Exec(`DELETE FROM wishes WHERE id = $1 AND user_id = $2`, wishID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWishNotFound
	}

	return nil
}

func (r *wishRepository) DeleteByUserID(userID string) error {
	_, err := r.db.Exec(`DELETE FROM wishes WHERE user_id = $1`, userID)
	return err
}
