package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type PatronRepository interface {
	// Upsert inserts the patron row or replaces it whole if one already
	// exists for the same user ID (last writer wins).
	Upsert(patron *model.Patron) error
	ByID(id string) (*model.Patron, error)
	// Recent lists patrons newest-updated first. The context is the request
	// context; navigating away aborts the query.
	Recent(ctx context.Context, limit int) ([]*model.Patron, error)
	Delete(id string) error
}

type patronRepository struct {
	db *sqlx.DB
}

func NewPatronRepository(db *sqlx.DB) PatronRepository {
	return &patronRepository{db: db}
}

func (r *patronRepository) Upsert(patron *model.Patron) error {
	query := `
		INSERT INTO patrons (id, email, full_name, dob, sex, religion, occupation, address,
		                     contact_number, relatives_contact, service_grade, memorable_deeds,
		                     top_memories_url, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			full_name = excluded.full_name,
			dob = excluded.dob,
			sex = excluded.sex,
			religion = excluded.religion,
			occupation = excluded.occupation,
			address = excluded.address,
			contact_number = excluded.contact_number,
			relatives_contact = excluded.relatives_contact,
			service_grade = excluded.service_grade,
			memorable_deeds = excluded.memorable_deeds,
			top_memories_url = excluded.top_memories_url,
			avatar_url = excluded.avatar_url,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		patron.ID,
		patron.Email,
		patron.FullName,
		patron.DOB,
		patron.Sex,
		patron.Religion,
		patron.Occupation,
		patron.Address,
		patron.ContactNumber,
		patron.RelativesContact,
		patron.ServiceGrade,
		patron.MemorableDeeds,
		patron.TopMemoriesURL,
		patron.AvatarURL,
		patron.UpdatedAt,
	)

	return err
}

func (r *patronRepository) ByID(id string) (*model.Patron, error) {
	patron := &model.Patron{}
	query := `SELECT * FROM patrons WHERE id = $1`

	err := r.db.Get(patron, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPatronNotFound
	}

	return patron, err
}

func (r *patronRepository) Recent(ctx context.Context, limit int) ([]*model.Patron, error) {
	var patrons []*model.Patron
	query := `SELECT * FROM patrons ORDER BY updated_at DESC LIMIT $1`

	err := r.db.SelectContext(ctx, &patrons, query, limit)
	if err != nil {
		return nil, err
	}

	return patrons, nil
}

func (r *patronRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM patrons WHERE id = $1`, id)
	return err
}
