package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/catalog"
	"github.com/eren/coursemap/internal/degree"
	"github.com/eren/coursemap/internal/pkg/apperrors"
)

type fakeFetcher struct {
	courses []catalog.RawCourse
	err     error

	gotTermCode string
}

func (f *fakeFetcher) FetchTerm(_ context.Context, termCode string) ([]catalog.RawCourse, error) {
	f.gotTermCode = termCode
	return f.courses, f.err
}

type fakeCourseWriter struct {
	synced   []*models.Course
	termCode string
	calls    int
	err      error
}

func (f *fakeCourseWriter) SyncTerm(_ context.Context, courses []*models.Course, termCode string) (int64, error) {
	f.calls++
	f.synced = courses
	f.termCode = termCode
	return 3, f.err
}

type fakeDefaultDocs struct {
	doc *degree.RequirementDocument
	err error
}

func (f *fakeDefaultDocs) GetDefault(context.Context) (*models.StoredRequirementDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StoredRequirementDocument{Name: f.doc.Name, Document: f.doc}, nil
}

func testDoc() *degree.RequirementDocument {
	return &degree.RequirementDocument{
		Name:             "Bachelor of Computer Science",
		RelevantSubjects: []string{"CS", "STAT"},
		Requirements: []degree.Requirement{
			{Description: "Core", Options: []string{"CS135", "CS136"}},
			{Description: "Algebra", Options: []string{"MATH135"}},
		},
	}
}

func syncFixtures(fetcher *fakeFetcher) (*SyncService, *fakeCourseWriter) {
	writer := &fakeCourseWriter{}
	svc := NewSyncService(fetcher, writer, &fakeDefaultDocs{doc: testDoc()}, zerolog.Nop())
	return svc, writer
}

func TestSyncService_Run(t *testing.T) {
	fetcher := &fakeFetcher{courses: []catalog.RawCourse{
		{Subject: "cs", CatalogNumber: "135", Title: "Designing Functional Programs"},
		{Subject: "MATH", CatalogNumber: "135", Title: "Algebra", Description: "Intro algebra"},
		{Subject: "STAT", CatalogNumber: "230", Title: "Probability"},
		{Subject: "PHYS", CatalogNumber: "121", Title: "Mechanics"},
	}}
	svc, writer := syncFixtures(fetcher)

	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Run(context.Background(), now, false)
	require.NoError(t, err)

	assert.Equal(t, "1261", fetcher.gotTermCode)
	assert.Equal(t, "1261", result.TermCode)
	assert.Equal(t, 4, result.Synced)
	assert.Equal(t, int64(3), result.Archived)

	require.Len(t, writer.synced, 4)
	byCode := make(map[string]*models.Course, len(writer.synced))
	for _, c := range writer.synced {
		byCode[c.Code] = c
		assert.Equal(t, "1261", c.TermCode)
		assert.True(t, c.Active)
	}

	// Listed in a requirement: required and relevant.
	assert.True(t, byCode["CS135"].Required)
	assert.True(t, byCode["CS135"].Relevant)
	assert.True(t, byCode["MATH135"].Required)
	// Watched subject only.
	assert.False(t, byCode["STAT230"].Required)
	assert.True(t, byCode["STAT230"].Relevant)
	// Neither.
	assert.False(t, byCode["PHYS121"].Required)
	assert.False(t, byCode["PHYS121"].Relevant)

	// Subject casing from the feed is normalized into the code.
	assert.Equal(t, "CS", byCode["CS135"].SubjectCode)
	require.NotNil(t, byCode["MATH135"].Description)
	assert.Equal(t, "Intro algebra", *byCode["MATH135"].Description)
	assert.Nil(t, byCode["STAT230"].Description)
}

func TestSyncService_Run_EmptyFeedRefused(t *testing.T) {
	svc, writer := syncFixtures(&fakeFetcher{courses: nil})

	_, err := svc.Run(context.Background(), time.Now(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCatalog)
	assert.Zero(t, writer.calls, "an empty feed must not touch storage")
}

func TestSyncService_Run_FetchErrorAborts(t *testing.T) {
	svc, writer := syncFixtures(&fakeFetcher{err: errors.New("connection refused")})

	_, err := svc.Run(context.Background(), time.Now(), false)
	require.Error(t, err)
	assert.Zero(t, writer.calls)
}

func TestSyncService_Run_UpsertErrorSurfaces(t *testing.T) {
	fetcher := &fakeFetcher{courses: []catalog.RawCourse{
		{Subject: "CS", CatalogNumber: "135", Title: "Designing Functional Programs"},
	}}
	writer := &fakeCourseWriter{err: errors.New("deadlock detected")}
	svc := NewSyncService(fetcher, writer, &fakeDefaultDocs{doc: testDoc()}, zerolog.Nop())

	_, err := svc.Run(context.Background(), time.Now(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog upsert failed")
}

func TestSyncService_Run_DryRunWritesNothing(t *testing.T) {
	fetcher := &fakeFetcher{courses: []catalog.RawCourse{
		{Subject: "CS", CatalogNumber: "135", Title: "Designing Functional Programs"},
	}}
	svc, writer := syncFixtures(fetcher)

	result, err := svc.Run(context.Background(), time.Now(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Zero(t, writer.calls)
}

func TestNormalizeCatalog_SkipsBlankCodes(t *testing.T) {
	raw := []catalog.RawCourse{
		{Subject: "CS", CatalogNumber: "135", Title: "Keep"},
		{Subject: "  ", CatalogNumber: "", Title: "Drop"},
	}

	courses := NormalizeCatalog(raw, "1261", testDoc(), time.Now())
	require.Len(t, courses, 1)
	assert.Equal(t, "CS135", courses[0].Code)
}
