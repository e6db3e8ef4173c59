package degree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePlanJSON(t *testing.T, payload string) []map[string]interface{} {
	t.Helper()
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizePlanImport_CourseCodeField(t *testing.T) {
	entries, err := NormalizePlanImport(decodePlanJSON(t,
		`[{"course_code":"math135","term":"1A"}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, PlanImportEntry{CourseCode: "MATH135", Term: "1A"}, entries[0])
}

func TestNormalizePlanImport_SplitSubjectCatalog(t *testing.T) {
	entries, err := NormalizePlanImport(decodePlanJSON(t,
		`[{"subjectCode":"CS","catalogNumber":"136"}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CS136", entries[0].CourseCode)
	assert.Equal(t, TermUnscheduled, entries[0].Term)
	assert.False(t, entries[0].Completed)
}

func TestNormalizePlanImport_KeyPriority(t *testing.T) {
	// course_code outranks the split pair when both are present.
	entries, err := NormalizePlanImport(decodePlanJSON(t,
		`[{"course_code":"MATH135","subjectCode":"CS","catalogNumber":"136"}]`))
	require.NoError(t, err)
	assert.Equal(t, "MATH135", entries[0].CourseCode)
}

func TestNormalizePlanImport_SnakeCaseSplitPair(t *testing.T) {
	entries, err := NormalizePlanImport(decodePlanJSON(t,
		`[{"subject":"stat","catalog_number":230,"completed":true}]`))
	require.NoError(t, err)
	assert.Equal(t, "STAT230", entries[0].CourseCode)
	assert.True(t, entries[0].Completed)
}

func TestNormalizePlanImport_UnresolvableCode(t *testing.T) {
	entries, err := NormalizePlanImport(decodePlanJSON(t,
		`[{"course_code":"CS135"},{"title":"no code here"}]`))
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, ErrInvalidPlanImport)
	assert.Contains(t, err.Error(), "entry 2")
}

func TestNormalizePlanImport_PreservesOrderAndDuplicates(t *testing.T) {
	entries, err := NormalizePlanImport(decodePlanJSON(t, `[
		{"course_code":"CS135","term":"1A"},
		{"course_code":"CS136","term":"1B"},
		{"course_code":"CS135","term":"2A","completed":true}
	]`))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "CS135", entries[0].CourseCode)
	assert.Equal(t, "CS136", entries[1].CourseCode)
	// Duplicates survive normalization; the storage upsert settles them.
	assert.Equal(t, "CS135", entries[2].CourseCode)
	assert.Equal(t, "2A", entries[2].Term)
	assert.True(t, entries[2].Completed)
}

func TestNormalizePlanImport_CompletedCoercion(t *testing.T) {
	entries, err := NormalizePlanImport(decodePlanJSON(t, `[
		{"course_code":"A1","completed":true},
		{"course_code":"A2","completed":"true"},
		{"course_code":"A3","completed":1},
		{"course_code":"A4","completed":null},
		{"course_code":"A5"}
	]`))
	require.NoError(t, err)
	assert.True(t, entries[0].Completed)
	assert.True(t, entries[1].Completed)
	assert.True(t, entries[2].Completed)
	assert.False(t, entries[3].Completed)
	assert.False(t, entries[4].Completed)
}
