package degree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectPrefix(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"STAT230", "STAT"},
		{"CS136", "CS"},
		{"MATH135", "MATH"},
		{"135", ""},
		{"", ""},
		{"ECON", "ECON"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SubjectPrefix(tt.code), "code %q", tt.code)
	}
}

func TestTagCourse(t *testing.T) {
	doc := &RequirementDocument{
		RelevantSubjects: []string{"STAT", "CS"},
		Requirements: []Requirement{
			{Options: []string{"CS135", "CS136"}},
			{Options: []string{"MATH135"}},
		},
	}
	required := doc.RequiredOptions()
	subjects := doc.SubjectSet()

	tests := []struct {
		code         string
		wantRequired bool
		wantRelevant bool
	}{
		// Listed as an option: required and therefore relevant.
		{"CS135", true, true},
		// Required even though MATH is not a watched subject.
		{"MATH135", true, true},
		// Watched subject only.
		{"STAT230", false, true},
		{"CS246", false, true},
		// Neither.
		{"PHYS121", false, false},
	}
	for _, tt := range tests {
		isRequired, isRelevant := TagCourse(tt.code, required, subjects)
		assert.Equal(t, tt.wantRequired, isRequired, "required flag for %s", tt.code)
		assert.Equal(t, tt.wantRelevant, isRelevant, "relevant flag for %s", tt.code)
	}
}
