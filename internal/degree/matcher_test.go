package degree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleRequirementDoc(options ...string) *RequirementDocument {
	return &RequirementDocument{
		Name:         "Test Program",
		Requirements: []Requirement{{Description: "Core", Options: options}},
	}
}

func TestEvaluateFulfillment_FirstListedOptionWins(t *testing.T) {
	doc := singleRequirementDoc("A", "B")

	// Only the later option is planned.
	report := EvaluateFulfillment(CourseCodeSet([]string{"B"}), doc)
	require.Len(t, report, 1)
	assert.True(t, report[0].Fulfilled)
	assert.Equal(t, "B", report[0].FulfilledBy)

	// Both options planned: the first listed wins, not an arbitrary one.
	report = EvaluateFulfillment(CourseCodeSet([]string{"A", "B"}), doc)
	assert.Equal(t, "A", report[0].FulfilledBy)
}

func TestEvaluateFulfillment_Unfulfilled(t *testing.T) {
	doc := singleRequirementDoc("CS135", "CS136")

	report := EvaluateFulfillment(CourseCodeSet([]string{"PHYS121"}), doc)
	require.Len(t, report, 1)
	assert.False(t, report[0].Fulfilled)
	assert.Empty(t, report[0].FulfilledBy)
}

func TestEvaluateFulfillment_OptionOrderMatters(t *testing.T) {
	courses := CourseCodeSet([]string{"CS135", "CS136"})

	forward := EvaluateFulfillment(courses, singleRequirementDoc("CS135", "CS136"))
	reversed := EvaluateFulfillment(courses, singleRequirementDoc("CS136", "CS135"))

	assert.Equal(t, "CS135", forward[0].FulfilledBy)
	assert.Equal(t, "CS136", reversed[0].FulfilledBy)
}

func TestEvaluateFulfillment_UserSetOrderDoesNot(t *testing.T) {
	doc := &RequirementDocument{Requirements: []Requirement{
		{Description: "Algebra", Options: []string{"MATH135", "MATH145"}},
		{Description: "Programming", Options: []string{"CS135", "CS145"}},
		{Description: "Statistics", Options: []string{"STAT230"}},
	}}

	// Map iteration order varies between runs; the report must not.
	courses := CourseCodeSet([]string{"STAT230", "CS145", "MATH135", "MATH145"})
	want := EvaluateFulfillment(courses, doc)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, EvaluateFulfillment(courses, doc))
	}

	assert.Equal(t, "MATH135", want[0].FulfilledBy)
	assert.Equal(t, "CS145", want[1].FulfilledBy)
	assert.Equal(t, "STAT230", want[2].FulfilledBy)
}

func TestEvaluateFulfillment_ReportOrderFollowsDocument(t *testing.T) {
	doc := &RequirementDocument{Requirements: []Requirement{
		{Description: "First", Options: []string{"X1"}},
		{Description: "Second", Options: []string{"X2"}},
		{Description: "Third", Options: []string{"X3"}},
	}}

	report := EvaluateFulfillment(CourseCodeSet(nil), doc)
	require.Len(t, report, 3)
	assert.Equal(t, "First", report[0].Description)
	assert.Equal(t, "Second", report[1].Description)
	assert.Equal(t, "Third", report[2].Description)
}

func TestEvaluateFulfillment_EndToEndScenario(t *testing.T) {
	doc := &RequirementDocument{Requirements: []Requirement{
		{Description: "Core", Options: []string{"CS135", "CS136"}},
	}}

	report := EvaluateFulfillment(CourseCodeSet([]string{"CS136"}), doc)
	require.Len(t, report, 1)
	assert.Equal(t, RequirementStatus{
		Description: "Core",
		Fulfilled:   true,
		FulfilledBy: "CS136",
	}, report[0])
}
