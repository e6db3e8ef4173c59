package degree

// SubjectPrefix returns the leading alphabetic run of a course code, e.g.
// "STAT" for "STAT230". An empty string means the code has no subject prefix.
func SubjectPrefix(code string) string {
	for i, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return code[:i]
		}
	}
	return code
}

// TagCourse computes the required/relevant flags for a course code against a
// flattened required-option set and a relevant-subject set. A course is
// required when some requirement lists it as an option, and relevant when it
// is required or its subject prefix is on the watch list.
//
// This is the single source of truth for tagging: the sync job persists these
// flags and the catalog browse path recomputes them for per-user documents,
// both through this function.
func TagCourse(code string, requiredOptions, subjects map[string]struct{}) (isRequired, isRelevant bool) {
	_, isRequired = requiredOptions[code]
	if isRequired {
		return true, true
	}
	_, isRelevant = subjects[SubjectPrefix(code)]
	return false, isRelevant
}
