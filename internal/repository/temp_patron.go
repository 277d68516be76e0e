package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type TempPatronRepository interface {
	// Upsert stores the pledge keyed by email; resubmitting before signup
	// replaces the earlier payload.
	Upsert(tp *model.TempPatron) error
	ByEmail(email string) (*model.TempPatron, error)
	// Claim marks the record as being migrated. The conditional write is the
	// at-most-once guard across devices: only one caller gets the row.
	Claim(id string) error
	// ReleaseClaim undoes Claim after a failed permanent write so a later
	// sign-in can retry the migration.
	ReleaseClaim(id string) error
	Delete(id string) error
}

type tempPatronRepository struct {
	db *sqlx.DB
}

func NewTempPatronRepository(db *sqlx.DB) TempPatronRepository {
	return &tempPatronRepository{db: db}
}

func (r *tempPatronRepository) Upsert(tp *model.TempPatron) error {
	if tp.ID == "" {
		tp.ID = uuid.New().String()
	}
	if tp.CreatedAt.IsZero() {
		tp.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO temp_patrons (id, email, form_data, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			form_data = excluded.form_data,
			claimed_at = NULL
	`

	_, err := r.db.Exec(query, tp.ID, tp.Email, tp.FormData, tp.CreatedAt)
	return err
}

func (r *tempPatronRepository) ByEmail(email string) (*model.TempPatron, error) {
	tp := &model.TempPatron{}
	query := `SELECT * FROM temp_patrons WHERE email = $1`

	err := r.db.Get(tp, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrTempPatronNotFound
	}

	return tp, err
}

func (r *tempPatronRepository) Claim(id string) error {
	result, err := r.db.Exec(`UPDATE temp_patrons SET claimed_at = $1 WHERE id = $2 AND claimed_at IS NULL`, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTempPatronClaimed
	}

	return nil
}

func (r *tempPatronRepository) ReleaseClaim(id string) error {
	_, err := r.db.Exec(`UPDATE temp_patrons SET claimed_at = NULL WHERE id = $1`, id)
	return err
}

func (r *tempPatronRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM temp_patrons WHERE id = $1`, id)
	return err
}
