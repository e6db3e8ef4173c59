package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/config"
	"github.com/eren/coursemap/internal/degree"
)

// CreateDefaultData seeds the default requirement document. The document is
// read from the configured requirements file when present, otherwise a
// built-in fallback for the configured program is used. Seeding always
// re-normalizes and upserts, so edits to the file take effect on restart.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	requirementRepo := appRepos.NewRequirementRepository(dbPool)

	defaults := degree.ProgramDefaults{
		ProgramName: cfg.Program.Name,
		Subjects:    cfg.Program.RelevantSubjects,
	}

	raw, err := loadRequirementsFile(cfg.Program.RequirementsFile, lgr)
	if err != nil {
		return err
	}
	if raw == nil {
		raw = fallbackDocument()
		lgr.Info().Str("program", cfg.Program.Name).Msg("Requirements file not found, seeding built-in default document")
	}

	doc, err := degree.NormalizeDocument(*raw, defaults)
	if err != nil {
		return fmt.Errorf("default requirement document is invalid: %w", err)
	}

	if err := requirementRepo.UpsertDefault(ctx, doc); err != nil {
		return fmt.Errorf("failed to seed default requirement document: %w", err)
	}

	lgr.Info().
		Str("name", doc.Name).
		Int("requirements", len(doc.Requirements)).
		Msg("Default requirement document seeded")
	return nil
}

// loadRequirementsFile parses the document file. A missing file is not an
// error; it just selects the fallback.
func loadRequirementsFile(path string, lgr zerolog.Logger) (*degree.RawDocument, error) {
	if path == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements file %s: %w", path, err)
	}

	var raw degree.RawDocument
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse requirements file %s: %w", path, err)
	}

	lgr.Debug().Str("path", path).Msg("Loaded requirements file")
	return &raw, nil
}

// fallbackDocument is the built-in Bachelor of Computer Science core, used
// when no requirements file is configured.
func fallbackDocument() *degree.RawDocument {
	return &degree.RawDocument{
		Requirements: []degree.RawRequirement{
			{Description: "Introductory programming", Options: []interface{}{"CS135", "CS145"}},
			{Description: "Elementary algorithm design and data abstraction", Options: []interface{}{"CS136", "CS146"}},
			{Description: "Algebra", Options: []interface{}{"MATH135", "MATH145"}},
			{Description: "Calculus 1", Options: []interface{}{"MATH137", "MATH147"}},
			{Description: "Calculus 2", Options: []interface{}{"MATH138", "MATH148"}},
			{Description: "Linear algebra", Options: []interface{}{"MATH136", "MATH146"}},
		},
	}
}
