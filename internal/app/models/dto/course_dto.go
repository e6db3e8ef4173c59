package dto

// CourseFilter captures the catalog browse query parameters.
type CourseFilter struct {
	Subject      string `form:"subject"`
	Search       string `form:"search"`
	RequiredOnly bool   `form:"required"`
	RelevantOnly bool   `form:"relevant"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}

// CourseResponse is the catalog row as served to the browsing UI. The
// required/relevant flags reflect the caller's effective requirement
// document, which may differ from the persisted (default-document) flags.
type CourseResponse struct {
	Code          string  `json:"code" example:"MATH135"`
	TermCode      string  `json:"termCode" example:"1261"`
	SubjectCode   string  `json:"subjectCode" example:"MATH"`
	CatalogNumber string  `json:"catalogNumber" example:"135"`
	Title         string  `json:"title" example:"Algebra for Honours Mathematics"`
	Description   *string `json:"description,omitempty"`
	Prerequisites *string `json:"prerequisites,omitempty"`
	GradingBasis  *string `json:"gradingBasis,omitempty"`
	ComponentCode *string `json:"componentCode,omitempty"`
	Required      bool    `json:"required"`
	Relevant      bool    `json:"relevant"`
}
