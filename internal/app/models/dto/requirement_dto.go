package dto

import "github.com/eren/coursemap/internal/degree"

// UploadRequirementsRequest is the uploaded requirement document. It is bound
// permissively; all real validation happens in degree.NormalizeDocument so
// that error messages can name the offending requirement index.
type UploadRequirementsRequest degree.RawDocument

// RequirementDocumentResponse is the caller's effective (normalized) document.
type RequirementDocumentResponse struct {
	Name             string               `json:"name" example:"Bachelor of Computer Science"`
	RelevantSubjects []string             `json:"relevantSubjects"`
	Requirements     []degree.Requirement `json:"requirements"`
	Custom           bool                 `json:"custom"`
}
