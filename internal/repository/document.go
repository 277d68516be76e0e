package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/bookmylastwishes/portal/internal/model"
)

type DocumentRepository interface {
	Create(doc *model.Document) error
	ByID(userID, docID string) (*model.Document, error)
	ByUserID(userID string) ([]*model.Document, error)
	Delete(userID, docID string) error
	DeleteByUserID(userID string) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	query := `INSERT INTO documents (id, user_id, file_name, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.Size,
		doc.StoragePath,
		doc.CreatedAt,
	)

	return err
}

func (r *documentRepository) ByID(userID, docID string) (*model.Document, error) {
	doc := &model.Document{}
	query := `SELECT * FROM documents WHERE id = $1 AND user_id = $2`

	err := r.db.Get(doc, query, docID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}

	return doc, err
}

func (r *documentRepository) ByUserID(userID string) ([]*model.Document, error) {
	var docs []*model.Document
	query := `SELECT * FROM documents WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&docs, query, userID)
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) Delete(userID, docID string) error {
	result, err := r.db.Exec(`DELETE FROM documents WHERE id = $1 AND user_id = $2`, docID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) DeleteByUserID(userID string) error {
	_, err := r.db.Exec(`DELETE FROM documents WHERE user_id = $1`, userID)
	return err
}
