package dto

// UpsertPlanEntryRequest creates or replaces one plan entry for the caller.
type UpsertPlanEntryRequest struct {
	Term      string `json:"term" example:"1A"`
	Completed bool   `json:"completed"`
}

// PlanEntryResponse is one row of the caller's plan.
type PlanEntryResponse struct {
	CourseCode string `json:"courseCode" example:"MATH135"`
	Term       string `json:"term" example:"1A"`
	Completed  bool   `json:"completed"`
}

// PlanImportResult reports the outcome of a plan import.
type PlanImportResult struct {
	Imported int `json:"imported" example:"12"`
}

// FulfillmentResponse is the requirement checklist for the caller's plan.
type FulfillmentResponse struct {
	Program      string                 `json:"program" example:"Bachelor of Computer Science"`
	Requirements []RequirementStatusDTO `json:"requirements"`
}

// RequirementStatusDTO mirrors degree.RequirementStatus for the API surface.
type RequirementStatusDTO struct {
	Description string `json:"description" example:"Core programming"`
	Fulfilled   bool   `json:"fulfilled"`
	FulfilledBy string `json:"fulfilledBy,omitempty" example:"CS136"`
}
