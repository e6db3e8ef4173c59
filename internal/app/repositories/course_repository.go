package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/db"
	"github.com/eren/coursemap/internal/pkg/helpers"
)

// Course error types
var (
	ErrCourseNotFound = errors.New("course not found")
)

const courseColumns = `code, term_code, subject_code, catalog_number, title, description,
	prerequisites, grading_basis, component_code,
	enroll_consent_code, enroll_consent_desc, drop_consent_code, drop_consent_desc,
	required, relevant, active, synced_at`

// CourseRepository handles database operations for catalog courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.Code,
		&course.TermCode,
		&course.SubjectCode,
		&course.CatalogNumber,
		&course.Title,
		&course.Description,
		&course.Prerequisites,
		&course.GradingBasis,
		&course.ComponentCode,
		&course.EnrollConsentCode,
		&course.EnrollConsentDesc,
		&course.DropConsentCode,
		&course.DropConsentDesc,
		&course.Required,
		&course.Relevant,
		&course.Active,
		&course.SyncedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetByCode retrieves the active catalog row for a course code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE code = $1 AND active = TRUE
		ORDER BY term_code DESC
		LIMIT 1
	`

	course, err := scanCourse(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// List retrieves active catalog rows matching the filter, newest term first,
// with the total match count for pagination.
func (r *CourseRepository) List(ctx context.Context, filter dto.CourseFilter) ([]*models.Course, int64, error) {
	conditions := []string{"active = TRUE"}
	args := []interface{}{}

	if filter.Subject != "" {
		args = append(args, strings.ToUpper(strings.TrimSpace(filter.Subject)))
		conditions = append(conditions, fmt.Sprintf("subject_code = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(code ILIKE $%d OR title ILIKE $%d)", n, n))
	}
	if filter.RequiredOnly {
		conditions = append(conditions, "required = TRUE")
	}
	if filter.RelevantOnly {
		conditions = append(conditions, "relevant = TRUE")
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM courses WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT `+courseColumns+`
		FROM courses
		WHERE %s
		ORDER BY code, term_code DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// ListMatching retrieves every active row matching the subject/search filter,
// without pagination. The browse path uses it when a caller's custom
// requirement document forces the required/relevant filters to be evaluated
// in memory.
func (r *CourseRepository) ListMatching(ctx context.Context, subject, search string) ([]*models.Course, error) {
	conditions := []string{"active = TRUE"}
	args := []interface{}{}

	if subject != "" {
		args = append(args, strings.ToUpper(strings.TrimSpace(subject)))
		conditions = append(conditions, fmt.Sprintf("subject_code = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+strings.TrimSpace(search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(code ILIKE $%d OR title ILIKE $%d)", n, n))
	}

	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY code, term_code DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// UpsertBatch writes a batch of catalog rows inside the given transaction,
// keyed by (code, term_code). Re-running with the same data is a no-op in
// effect, which keeps the sync job safe to retry.
func (r *CourseRepository) UpsertBatch(ctx context.Context, tx pgx.Tx, courses []*models.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (code, term_code) DO UPDATE SET
			subject_code = EXCLUDED.subject_code,
			catalog_number = EXCLUDED.catalog_number,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			prerequisites = EXCLUDED.prerequisites,
			grading_basis = EXCLUDED.grading_basis,
			component_code = EXCLUDED.component_code,
			enroll_consent_code = EXCLUDED.enroll_consent_code,
			enroll_consent_desc = EXCLUDED.enroll_consent_desc,
			drop_consent_code = EXCLUDED.drop_consent_code,
			drop_consent_desc = EXCLUDED.drop_consent_desc,
			required = EXCLUDED.required,
			relevant = EXCLUDED.relevant,
			active = EXCLUDED.active,
			synced_at = EXCLUDED.synced_at
	`

	for _, course := range courses {
		_, err := tx.Exec(ctx, query,
			course.Code,
			course.TermCode,
			course.SubjectCode,
			course.CatalogNumber,
			course.Title,
			course.Description,
			course.Prerequisites,
			course.GradingBasis,
			course.ComponentCode,
			course.EnrollConsentCode,
			course.EnrollConsentDesc,
			course.DropConsentCode,
			course.DropConsentDesc,
			course.Required,
			course.Relevant,
			course.Active,
			course.SyncedAt,
		)
		if err != nil {
			return fmt.Errorf("error upserting course %s/%s: %w", course.Code, course.TermCode, err)
		}
	}

	return nil
}

// SyncTerm applies one sync run atomically: upsert the fetched rows, then
// archive every row from a different term. Either both happen or neither.
func (r *CourseRepository) SyncTerm(ctx context.Context, courses []*models.Course, termCode string) (archived int64, err error) {
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.UpsertBatch(ctx, tx, courses); err != nil {
			return err
		}
		archived, err = r.ArchiveOtherTerms(ctx, tx, termCode)
		return err
	})
	if err != nil {
		return 0, err
	}
	return archived, nil
}

// ArchiveOtherTerms clears the active flag on every row from a different term.
// Archival instead of deletion means a later failed sync can never leave the
// catalog empty.
func (r *CourseRepository) ArchiveOtherTerms(ctx context.Context, tx pgx.Tx, termCode string) (int64, error) {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE courses SET active = FALSE WHERE term_code <> $1 AND active = TRUE`, termCode)
	if err != nil {
		return 0, fmt.Errorf("error archiving stale terms: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
