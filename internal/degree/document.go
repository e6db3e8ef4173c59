// Package degree holds the pure program-requirement logic shared by the HTTP
// API and the catalog sync job: requirement document normalization,
// fulfillment matching, program-relevance tagging, plan import normalization
// and the academic term code rule. Nothing in this package touches the
// network or the database; callers pass plain data in and get plain data out.
package degree

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Document validation errors
var (
	ErrInvalidDocument   = errors.New("invalid requirement document")
	ErrNoRequirements    = errors.New("document must contain a non-empty requirements array")
	ErrEmptyOptions      = errors.New("requirement has no options")
	ErrAllOptionsBlank   = errors.New("requirement options are all blank")
	ErrInvalidPlanImport = errors.New("invalid plan import")
)

// Requirement is a single program rule, satisfied by any one of its option
// course codes. Options keep their declared order; the matcher relies on it.
type Requirement struct {
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// RequirementDocument is a validated, normalized program requirement set.
// Once built it is treated as read-only configuration.
type RequirementDocument struct {
	Name             string        `json:"name"`
	RelevantSubjects []string      `json:"relevantSubjects"`
	Requirements     []Requirement `json:"requirements"`
}

// RawRequirement mirrors one entry of an uploaded document before validation.
// Options are accepted as arbitrary JSON scalars and coerced to strings.
type RawRequirement struct {
	Description string        `json:"description"`
	Options     []interface{} `json:"options"`
}

// RawDocument mirrors the uploaded JSON shape before validation.
type RawDocument struct {
	Name             string           `json:"name"`
	RelevantSubjects []string         `json:"relevantSubjects"`
	Requirements     []RawRequirement `json:"requirements"`
}

// ProgramDefaults supplies the fallback program name and subject watch list
// applied when an uploaded document omits them.
type ProgramDefaults struct {
	ProgramName string
	Subjects    []string
}

// NormalizeDocument validates an untrusted parsed document and produces a
// RequirementDocument, or fails on the first invalid entry. Error messages
// name the 1-based index of the offending requirement. Option codes have all
// whitespace removed and are uppercased; blank options are dropped, and a
// requirement whose options are all blank is rejected outright rather than
// left to silently never match.
func NormalizeDocument(raw RawDocument, defaults ProgramDefaults) (*RequirementDocument, error) {
	if len(raw.Requirements) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, ErrNoRequirements)
	}

	doc := &RequirementDocument{
		Requirements: make([]Requirement, 0, len(raw.Requirements)),
	}

	for i, req := range raw.Requirements {
		if len(req.Options) == 0 {
			return nil, fmt.Errorf("%w: requirement %d: %w", ErrInvalidDocument, i+1, ErrEmptyOptions)
		}

		options := make([]string, 0, len(req.Options))
		for _, opt := range req.Options {
			code := NormalizeCourseCode(fmt.Sprintf("%v", opt))
			if code == "" {
				continue
			}
			options = append(options, code)
		}
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: requirement %d: %w", ErrInvalidDocument, i+1, ErrAllOptionsBlank)
		}

		description := strings.TrimSpace(req.Description)
		if description == "" {
			description = fmt.Sprintf("Requirement %d", i+1)
		}

		doc.Requirements = append(doc.Requirements, Requirement{
			Description: description,
			Options:     options,
		})
	}

	doc.Name = strings.TrimSpace(raw.Name)
	if doc.Name == "" {
		doc.Name = defaults.ProgramName
	}

	subjects := raw.RelevantSubjects
	if len(subjects) == 0 {
		subjects = defaults.Subjects
	}
	for _, s := range subjects {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		doc.RelevantSubjects = append(doc.RelevantSubjects, s)
	}

	return doc, nil
}

// RequiredOptions flattens every requirement's options into one set, used for
// program-relevance tagging.
func (d *RequirementDocument) RequiredOptions() map[string]struct{} {
	set := make(map[string]struct{})
	for _, req := range d.Requirements {
		for _, opt := range req.Options {
			set[opt] = struct{}{}
		}
	}
	return set
}

// SubjectSet returns the relevant subjects as a lookup set.
func (d *RequirementDocument) SubjectSet() map[string]struct{} {
	set := make(map[string]struct{}, len(d.RelevantSubjects))
	for _, s := range d.RelevantSubjects {
		set[s] = struct{}{}
	}
	return set
}

// NormalizeCourseCode strips every whitespace character from a course code
// and uppercases the rest, so "math 135 " becomes "MATH135".
func NormalizeCourseCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
