package degree

// RequirementStatus reports one requirement's fulfillment state. FulfilledBy
// is empty when the requirement is not covered by the plan.
type RequirementStatus struct {
	Description string `json:"description"`
	Fulfilled   bool   `json:"fulfilled"`
	FulfilledBy string `json:"fulfilledBy,omitempty"`
}

// EvaluateFulfillment computes the fulfillment report for a plan against a
// requirement document. For each requirement the options are scanned in their
// declared order and the first one present in userCourseCodes wins, so a
// student who could satisfy a requirement several ways is always reported
// against the canonical (first-listed) option. The result is independent of
// iteration order over userCourseCodes.
//
// Planned-but-not-completed courses count the same as completed ones; the
// report answers "is this requirement covered by the plan", not "already
// earned". An unfulfilled requirement is a valid result, never an error.
func EvaluateFulfillment(userCourseCodes map[string]struct{}, doc *RequirementDocument) []RequirementStatus {
	report := make([]RequirementStatus, 0, len(doc.Requirements))
	for _, req := range doc.Requirements {
		status := RequirementStatus{Description: req.Description}
		for _, opt := range req.Options {
			if _, ok := userCourseCodes[opt]; ok {
				status.Fulfilled = true
				status.FulfilledBy = opt
				break
			}
		}
		report = append(report, status)
	}
	return report
}

// CourseCodeSet builds the lookup set EvaluateFulfillment expects from a
// slice of already-normalized course codes.
func CourseCodeSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}
