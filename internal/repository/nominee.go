package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type NomineeRepository interface {
	Create(nominee *model.Nominee) error
	ByID(userID, nomineeID string) (*model.Nominee, error)
	ByUserID(userID string) ([]*model.Nominee, error)
	CountByUserID(userID string) (int, error)
	Update(nominee *model.Nominee) error
	Delete(userID, nomineeID string) error
	DeleteByUserID(userID string) error
}

type nomineeRepository struct {
	db *sqlx.DB
}

func NewNomineeRepository(db *sqlx.DB) NomineeRepository {
	return &nomineeRepository{db: db}
}

func (r *nomineeRepository) Create(nominee *model.Nominee) error {
	query := `INSERT INTO nominees (id, user_id, nominee_name, nominee_email, relationship, permissions, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		nominee.ID,
		nominee.UserID,
		nominee.Name,
		nominee.Email,
		nominee.Relationship,
		nominee.Permissions,
		nominee.CreatedAt,
		nominee.UpdatedAt,
	)

	return err
}

func (r *nomineeRepository) ByID(userID, nomineeID string) (*model.Nominee, error) {
	nominee := &model.Nominee{}
	query := `SELECT * FROM nominees WHERE id = $1 AND user_id = $2`

	err := r.db.Get(nominee, query, nomineeID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNomineeNotFound
	}

	return nominee, err
}

func (r *nomineeRepository) ByUserID(userID string) ([]*model.Nominee, error) {
	var nominees []*model.Nominee
	query := `SELECT * FROM nominees WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&nominees, query, userID)
	if err != nil {
		return nil, err
	}

	return nominees, nil
}

func (r *nomineeRepository) CountByUserID(userID string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM nominees WHERE user_id = $1`, userID)
	return count, err
}

func (r *nomineeRepository) Update(nominee *model.Nominee) error {
	query := `UPDATE nominees SET nominee_name = $1, nominee_email = $2, relationship = $3, permissions = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		nominee.Name,
		nominee.Email,
		nominee.Relationship,
		nominee.Permissions,
		nominee.UpdatedAt,
		nominee.ID,
		nominee.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNomineeNotFound
	}

	return nil
}

func (r *nomineeRepository) Delete(userID, nomineeID string) error {
	result, err := r.db.Exec(`DELETE FROM nominees WHERE id = $1 AND user_id = $2`, nomineeID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNomineeNotFound
	}

	return nil
}

func (r *nomineeRepository) DeleteByUserID(userID string) error {
	_, err := r.db.Exec(`DELETE FROM nominees WHERE user_id = $1`, userID)
	return err
}
