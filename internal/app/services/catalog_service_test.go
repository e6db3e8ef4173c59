package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/catalog"
	"github.com/eren/coursemap/internal/degree"
)

type fakeCourseReader struct {
	courses []*models.Course
}

func (f *fakeCourseReader) GetByCode(_ context.Context, code string) (*models.Course, error) {
	for _, c := range f.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, repositories.ErrCourseNotFound
}

func (f *fakeCourseReader) List(_ context.Context, filter dto.CourseFilter) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if filter.Subject != "" && c.SubjectCode != filter.Subject {
			continue
		}
		if filter.RequiredOnly && !c.Required {
			continue
		}
		if filter.RelevantOnly && !c.Relevant {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseReader) ListMatching(_ context.Context, subject, _ string) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if subject != "" && c.SubjectCode != subject {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// seededCourses builds catalog rows the way the sync job would, with flags
// persisted against the default document.
func seededCourses(t *testing.T) []*models.Course {
	t.Helper()
	raw := []catalog.RawCourse{
		{Subject: "CS", CatalogNumber: "135", Title: "Designing Functional Programs"},
		{Subject: "CS", CatalogNumber: "246", Title: "Object-Oriented Software Development"},
		{Subject: "MATH", CatalogNumber: "135", Title: "Algebra"},
		{Subject: "PHYS", CatalogNumber: "121", Title: "Mechanics"},
	}
	return NormalizeCatalog(raw, "1261", testDoc(), time.Now())
}

func TestCatalogService_GetCourse(t *testing.T) {
	reader := &fakeCourseReader{courses: seededCourses(t)}
	svc := NewCatalogService(reader, &fakeDocSource{doc: testDoc()})

	course, err := svc.GetCourse(context.Background(), uuid.New(), "cs 135")
	require.NoError(t, err)
	assert.Equal(t, "CS135", course.Code)
	assert.True(t, course.Required)
	assert.True(t, course.Relevant)

	_, err = svc.GetCourse(context.Background(), uuid.New(), "CS999")
	require.Error(t, err)
}

func TestCatalogService_ListCourses_DefaultDocument(t *testing.T) {
	reader := &fakeCourseReader{courses: seededCourses(t)}
	svc := NewCatalogService(reader, &fakeDocSource{doc: testDoc()})

	courses, info, err := svc.ListCourses(context.Background(), uuid.New(), dto.CourseFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 4, info.TotalItems)

	flags := make(map[string][2]bool, len(courses))
	for _, c := range courses {
		flags[c.Code] = [2]bool{c.Required, c.Relevant}
	}
	assert.Equal(t, [2]bool{true, true}, flags["CS135"])
	assert.Equal(t, [2]bool{false, true}, flags["CS246"])
	assert.Equal(t, [2]bool{false, false}, flags["PHYS121"])
}

// The browse path and the sync job tag through the same function, so for the
// default document the recomputed flags must equal the persisted ones.
func TestCatalogService_BrowseFlagsMatchSyncFlags(t *testing.T) {
	courses := seededCourses(t)
	reader := &fakeCourseReader{courses: courses}
	svc := NewCatalogService(reader, &fakeDocSource{doc: testDoc()})

	served, _, err := svc.ListCourses(context.Background(), uuid.New(), dto.CourseFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)

	persisted := make(map[string][2]bool, len(courses))
	for _, c := range courses {
		persisted[c.Code] = [2]bool{c.Required, c.Relevant}
	}
	for _, c := range served {
		assert.Equal(t, persisted[c.Code], [2]bool{c.Required, c.Relevant}, "flags diverged for %s", c.Code)
	}
}

func TestCatalogService_ListCourses_CustomDocumentRetags(t *testing.T) {
	reader := &fakeCourseReader{courses: seededCourses(t)}

	// Custom document: only PHYS matters now.
	customDoc := &degree.RequirementDocument{
		Name:             "Physics Minor",
		RelevantSubjects: []string{"PHYS"},
		Requirements: []degree.Requirement{
			{Description: "Mechanics", Options: []string{"PHYS121"}},
		},
	}
	svc := NewCatalogService(reader, &fakeDocSource{doc: customDoc, custom: true})

	courses, info, err := svc.ListCourses(context.Background(), uuid.New(),
		dto.CourseFilter{RelevantOnly: true, Page: 1, PageSize: 20})
	require.NoError(t, err)

	// Persisted flags say PHYS121 is irrelevant; the custom document flips it.
	require.Len(t, courses, 1)
	assert.Equal(t, "PHYS121", courses[0].Code)
	assert.True(t, courses[0].Required)
	assert.EqualValues(t, 1, info.TotalItems)
}
