package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/catalog"
	"github.com/eren/coursemap/internal/degree"
	"github.com/eren/coursemap/internal/pkg/apperrors"
)

// courseWriter is the slice of the course repository the sync job needs.
type courseWriter interface {
	SyncTerm(ctx context.Context, courses []*models.Course, termCode string) (archived int64, err error)
}

// defaultDocumentSource yields the seeded default requirement document that
// sync-time tagging runs against.
type defaultDocumentSource interface {
	GetDefault(ctx context.Context) (*models.StoredRequirementDocument, error)
}

// SyncService refreshes the course catalog from the external feed. One run is
// all-or-nothing: any fetch or write error aborts it, and because stale terms
// are archived rather than deleted, a failed run never empties the catalog
// and a retry is safe.
type SyncService struct {
	fetcher         catalog.Fetcher
	courseRepo      courseWriter
	requirementRepo defaultDocumentSource
	logger          zerolog.Logger
}

// NewSyncService creates a new sync service instance
func NewSyncService(fetcher catalog.Fetcher, courseRepo courseWriter, requirementRepo defaultDocumentSource, logger zerolog.Logger) *SyncService {
	return &SyncService{
		fetcher:         fetcher,
		courseRepo:      courseRepo,
		requirementRepo: requirementRepo,
		logger:          logger,
	}
}

// SyncResult summarizes a completed sync run.
type SyncResult struct {
	TermCode string
	Synced   int
	Archived int64
}

// Run executes one catalog sync for the term containing now. With dryRun set
// it fetches and normalizes but writes nothing.
func (s *SyncService) Run(ctx context.Context, now time.Time, dryRun bool) (*SyncResult, error) {
	termCode := degree.TermCode(now)
	s.logger.Info().Str("termCode", termCode).Bool("dryRun", dryRun).Msg("Starting catalog sync")

	stored, err := s.requirementRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load default requirement document: %w", err)
	}
	doc := stored.Document

	raw, err := s.fetcher.FetchTerm(ctx, termCode)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	if len(raw) == 0 {
		// An empty feed is far more likely an upstream fault than a term with
		// no courses; refusing it keeps the previous catalog intact.
		return nil, fmt.Errorf("%w for term %s", apperrors.ErrEmptyCatalog, termCode)
	}

	courses := NormalizeCatalog(raw, termCode, doc, time.Now())
	s.logger.Info().Int("fetched", len(raw)).Int("normalized", len(courses)).Msg("Catalog feed normalized")

	result := &SyncResult{TermCode: termCode, Synced: len(courses)}
	if dryRun {
		return result, nil
	}

	archived, err := s.courseRepo.SyncTerm(ctx, courses, termCode)
	if err != nil {
		return nil, fmt.Errorf("catalog upsert failed: %w", err)
	}
	result.Archived = archived

	s.logger.Info().
		Str("termCode", termCode).
		Int("synced", result.Synced).
		Int64("archived", archived).
		Msg("Catalog sync complete")

	return result, nil
}

// NormalizeCatalog converts raw feed records into catalog rows for a term,
// tagging each with degree.TagCourse against the given document. Records
// whose course code normalizes to nothing are skipped.
func NormalizeCatalog(raw []catalog.RawCourse, termCode string, doc *degree.RequirementDocument, syncedAt time.Time) []*models.Course {
	required := doc.RequiredOptions()
	subjects := doc.SubjectSet()

	courses := make([]*models.Course, 0, len(raw))
	for _, record := range raw {
		subject := degree.NormalizeCourseCode(record.Subject)
		catalogNumber := degree.NormalizeCourseCode(record.CatalogNumber)
		code := subject + catalogNumber
		if code == "" {
			continue
		}

		isRequired, isRelevant := degree.TagCourse(code, required, subjects)

		courses = append(courses, &models.Course{
			Code:              code,
			TermCode:          termCode,
			SubjectCode:       subject,
			CatalogNumber:     catalogNumber,
			Title:             record.Title,
			Description:       optionalString(record.Description),
			Prerequisites:     optionalString(record.Prerequisites),
			GradingBasis:      optionalString(record.GradingBasis),
			ComponentCode:     optionalString(record.ComponentCode),
			EnrollConsentCode: optionalString(record.EnrollConsentCode),
			EnrollConsentDesc: optionalString(record.EnrollConsentDesc),
			DropConsentCode:   optionalString(record.DropConsentCode),
			DropConsentDesc:   optionalString(record.DropConsentDesc),
			Required:          isRequired,
			Relevant:          isRelevant,
			Active:            true,
			SyncedAt:          syncedAt,
		})
	}

	return courses
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
