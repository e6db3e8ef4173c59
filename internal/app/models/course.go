package models

import "time"

// Course is one catalog row for a given term. Rows are replaced wholesale by
// the sync job; the planner never edits them. Code is the subject code and
// catalog number concatenated ("MATH135") and is unique per term.
type Course struct {
	Code          string  `json:"code" db:"code"`
	TermCode      string  `json:"termCode" db:"term_code"`
	SubjectCode   string  `json:"subjectCode" db:"subject_code"`
	CatalogNumber string  `json:"catalogNumber" db:"catalog_number"`
	Title         string  `json:"title" db:"title"`
	Description   *string `json:"description,omitempty" db:"description"`
	Prerequisites *string `json:"prerequisites,omitempty" db:"prerequisites"`
	GradingBasis  *string `json:"gradingBasis,omitempty" db:"grading_basis"`
	ComponentCode *string `json:"componentCode,omitempty" db:"component_code"`

	// Add/drop consent requirements as reported by the catalog feed.
	EnrollConsentCode *string `json:"enrollConsentCode,omitempty" db:"enroll_consent_code"`
	EnrollConsentDesc *string `json:"enrollConsentDescription,omitempty" db:"enroll_consent_desc"`
	DropConsentCode   *string `json:"dropConsentCode,omitempty" db:"drop_consent_code"`
	DropConsentDesc   *string `json:"dropConsentDescription,omitempty" db:"drop_consent_desc"`

	// Required/Relevant are tagged against the default requirement document
	// at sync time. Active is cleared, not deleted, for stale terms.
	Required bool      `json:"required" db:"required"`
	Relevant bool      `json:"relevant" db:"relevant"`
	Active   bool      `json:"active" db:"active"`
	SyncedAt time.Time `json:"syncedAt" db:"synced_at"`
}
