package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/degree"
)

// Requirement document error types
var (
	ErrRequirementDocNotFound = errors.New("requirement document not found")
)

// RequirementRepository handles database operations for stored requirement
// documents. The row with a NULL user_id is the built-in default program
// document; at most one per user otherwise.
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a new requirement document repository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{
		db: db,
	}
}

func scanStoredDocument(row pgx.Row) (*models.StoredRequirementDocument, error) {
	var stored models.StoredRequirementDocument
	var payload []byte
	err := row.Scan(&stored.ID, &stored.UserID, &stored.Name, &payload, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}

	var doc degree.RequirementDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("error decoding stored requirement document: %w", err)
	}
	stored.Document = &doc

	return &stored, nil
}

// GetDefault retrieves the built-in default program document.
func (r *RequirementRepository) GetDefault(ctx context.Context) (*models.StoredRequirementDocument, error) {
	query := `
		SELECT id, user_id, name, payload, created_at
		FROM requirement_documents
		WHERE user_id IS NULL
	`

	stored, err := scanStoredDocument(r.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequirementDocNotFound
		}
		return nil, fmt.Errorf("error retrieving default requirement document: %w", err)
	}

	return stored, nil
}

// GetByUser retrieves a user's uploaded document, if any.
func (r *RequirementRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.StoredRequirementDocument, error) {
	query := `
		SELECT id, user_id, name, payload, created_at
		FROM requirement_documents
		WHERE user_id = $1
	`

	stored, err := scanStoredDocument(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequirementDocNotFound
		}
		return nil, fmt.Errorf("error retrieving requirement document: %w", err)
	}

	return stored, nil
}

// UpsertForUser stores or replaces a user's document.
func (r *RequirementRepository) UpsertForUser(ctx context.Context, userID uuid.UUID, doc *degree.RequirementDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding requirement document: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO requirement_documents (user_id, name, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) WHERE user_id IS NOT NULL DO UPDATE SET
			name = EXCLUDED.name,
			payload = EXCLUDED.payload`,
		userID, doc.Name, payload)
	if err != nil {
		return fmt.Errorf("error storing requirement document: %w", err)
	}

	return nil
}

// UpsertDefault stores or replaces the built-in default document. Used by the
// seeder at startup.
func (r *RequirementRepository) UpsertDefault(ctx context.Context, doc *degree.RequirementDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding requirement document: %w", err)
	}

	// There is exactly one default row, so a conditional update with an
	// insert fallback avoids needing a conflict target on a NULL column.
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE requirement_documents SET name = $1, payload = $2 WHERE user_id IS NULL`,
		doc.Name, payload)
	if err != nil {
		return fmt.Errorf("error updating default requirement document: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO requirement_documents (user_id, name, payload) VALUES (NULL, $1, $2)`,
		doc.Name, payload)
	if err != nil {
		return fmt.Errorf("error storing default requirement document: %w", err)
	}

	return nil
}

// DeleteForUser removes a user's uploaded document, reverting them to the
// default program document.
func (r *RequirementRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM requirement_documents WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting requirement document: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRequirementDocNotFound
	}

	return nil
}
