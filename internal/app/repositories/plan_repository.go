package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/db"
	"github.com/eren/coursemap/internal/degree"
)

// Plan error types
var (
	ErrPlanEntryNotFound = errors.New("plan entry not found")
)

// PlanRepository handles database operations for degree plan entries
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		db: db,
	}
}

const planUpsertQuery = `
	INSERT INTO plan_entries (user_id, course_code, term, completed)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, course_code) DO UPDATE SET
		term = EXCLUDED.term,
		completed = EXCLUDED.completed,
		updated_at = NOW()
`

// Upsert creates or replaces one plan entry. The (user_id, course_code)
// unique key guarantees a course appears at most once per plan.
func (r *PlanRepository) Upsert(ctx context.Context, entry *models.PlanEntry) error {
	_, err := r.db.Exec(ctx, planUpsertQuery,
		entry.UserID, entry.CourseCode, entry.Term, entry.Completed)
	if err != nil {
		return fmt.Errorf("error upserting plan entry: %w", err)
	}
	return nil
}

// UpsertBatch writes imported entries in input order inside one transaction,
// so an import either applies fully or not at all. Duplicate course codes in
// the batch resolve to the last occurrence via the conflict clause.
func (r *PlanRepository) UpsertBatch(ctx context.Context, userID uuid.UUID, entries []degree.PlanImportEntry) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, entry := range entries {
			_, err := tx.Exec(ctx, planUpsertQuery,
				userID, entry.CourseCode, entry.Term, entry.Completed)
			if err != nil {
				return fmt.Errorf("error importing plan entry %s: %w", entry.CourseCode, err)
			}
		}
		return nil
	})
}

// ListByUser retrieves a user's plan entries, oldest first.
func (r *PlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.PlanEntry, error) {
	query := `
		SELECT id, user_id, course_code, term, completed, created_at, updated_at
		FROM plan_entries
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing plan entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.PlanEntry
	for rows.Next() {
		var entry models.PlanEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CourseCode,
			&entry.Term,
			&entry.Completed,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete removes one plan entry.
func (r *PlanRepository) Delete(ctx context.Context, userID uuid.UUID, courseCode string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM plan_entries WHERE user_id = $1 AND course_code = $2`,
		userID, courseCode)
	if err != nil {
		return fmt.Errorf("error deleting plan entry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPlanEntryNotFound
	}

	return nil
}
