package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type MFARepository interface {
	Create(factor *model.MFAFactor) error
	ByUserID(userID string) (*model.MFAFactor, error)
	MarkVerified(id string) error
	DeleteByUserID(userID string) error
}

type mfaRepository struct {
	db *sqlx.DB
}

func NewMFARepository(db *sqlx.DB) MFARepository {
	return &mfaRepository{db: db}
}

func (r *mfaRepository) Create(factor *model.MFAFactor) error {
	// A user enrolls at most one TOTP factor. Re-enrolling replaces
	// the pending one so an abandoned setup never locks anyone out.
	query := `INSERT INTO mfa_factors (id, user_id, secret, verified_at, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE SET
	            id = excluded.id,
	            secret = excluded.secret,
	            verified_at = excluded.verified_at,
	            created_at = excluded.created_at`

	_, err := r.db.Exec(query,
		factor.ID,
		factor.UserID,
		factor.Secret,
		factor.VerifiedAt,
		factor.CreatedAt,
	)

	return err
}

func (r *mfaRepository) ByUserID(userID string) (*model.MFAFactor, error) {
	factor := &model.MFAFactor{}
	query := `SELECT * FROM mfa_factors WHERE user_id = $1`

	err := r.db.Get(factor, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFactorNotFound
	}

	return factor, err
}

func (r *mfaRepository) MarkVerified(id string) error {
	result, err := r.db.Exec(`UPDATE mfa_factors SET verified_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFactorNotFound
	}

	return nil
}

func (r *mfaRepository) DeleteByUserID(userID string) error {
	_, err := r.db.Exec(`DELETE FROM mfa_factors WHERE user_id = $1`, userID)
	return err
}
