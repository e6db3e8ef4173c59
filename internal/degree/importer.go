package degree

import (
	"fmt"
	"strconv"
	"strings"
)

// TermUnscheduled is the placeholder term for imported plan entries that do
// not name one.
const TermUnscheduled = "UNSCHEDULED"

// PlanImportEntry is one normalized row of an uploaded plan.
type PlanImportEntry struct {
	CourseCode string `json:"course_code"`
	Term       string `json:"term"`
	Completed  bool   `json:"completed"`
}

// courseCodeKeys lists the accepted spellings for a plan entry's course code,
// in resolution priority order. The split subject/catalog pairs are
// concatenated.
var courseCodeKeys = []struct {
	code    string
	subject string
	catalog string
}{
	{code: "course_code"},
	{code: "courseCode"},
	{subject: "subjectCode", catalog: "catalogNumber"},
	{subject: "subject", catalog: "catalog_number"},
}

// NormalizePlanImport validates an uploaded plan array and produces normalized
// entries in input order, failing on the first element whose course code
// cannot be resolved (the error names its 1-based index). Duplicate course
// codes are deliberately kept: the storage layer's unique-key upsert makes the
// last occurrence win, which is the documented import policy.
func NormalizePlanImport(raw []map[string]interface{}) ([]PlanImportEntry, error) {
	entries := make([]PlanImportEntry, 0, len(raw))
	for i, item := range raw {
		code := resolveCourseCode(item)
		if code == "" {
			return nil, fmt.Errorf("%w: entry %d: no course code field found", ErrInvalidPlanImport, i+1)
		}

		term := strings.TrimSpace(stringField(item, "term"))
		if term == "" {
			term = TermUnscheduled
		}

		entries = append(entries, PlanImportEntry{
			CourseCode: code,
			Term:       term,
			Completed:  boolField(item, "completed"),
		})
	}
	return entries, nil
}

func resolveCourseCode(item map[string]interface{}) string {
	for _, keys := range courseCodeKeys {
		var candidate string
		if keys.code != "" {
			candidate = stringField(item, keys.code)
		} else {
			subject := stringField(item, keys.subject)
			catalog := stringField(item, keys.catalog)
			if subject == "" || catalog == "" {
				continue
			}
			candidate = subject + catalog
		}
		if code := NormalizeCourseCode(candidate); code != "" {
			return code
		}
	}
	return ""
}

func stringField(item map[string]interface{}, key string) string {
	v, ok := item[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; catalog numbers are integral.
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func boolField(item map[string]interface{}, key string) bool {
	v, ok := item[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case float64:
		return t != 0
	default:
		return false
	}
}
