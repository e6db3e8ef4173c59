package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/degree"
)

type fakeRequirementStore struct {
	defaultDoc *degree.RequirementDocument
	userDocs   map[uuid.UUID]*degree.RequirementDocument
}

func newFakeRequirementStore(defaultDoc *degree.RequirementDocument) *fakeRequirementStore {
	return &fakeRequirementStore{
		defaultDoc: defaultDoc,
		userDocs:   make(map[uuid.UUID]*degree.RequirementDocument),
	}
}

func (f *fakeRequirementStore) GetDefault(context.Context) (*models.StoredRequirementDocument, error) {
	if f.defaultDoc == nil {
		return nil, repositories.ErrRequirementDocNotFound
	}
	return &models.StoredRequirementDocument{Name: f.defaultDoc.Name, Document: f.defaultDoc}, nil
}

func (f *fakeRequirementStore) GetByUser(_ context.Context, userID uuid.UUID) (*models.StoredRequirementDocument, error) {
	doc, ok := f.userDocs[userID]
	if !ok {
		return nil, repositories.ErrRequirementDocNotFound
	}
	return &models.StoredRequirementDocument{Name: doc.Name, Document: doc}, nil
}

func (f *fakeRequirementStore) UpsertForUser(_ context.Context, userID uuid.UUID, doc *degree.RequirementDocument) error {
	f.userDocs[userID] = doc
	return nil
}

func (f *fakeRequirementStore) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	if _, ok := f.userDocs[userID]; !ok {
		return repositories.ErrRequirementDocNotFound
	}
	delete(f.userDocs, userID)
	return nil
}

var serviceDefaults = degree.ProgramDefaults{
	ProgramName: "Bachelor of Computer Science",
	Subjects:    []string{"CS", "MATH", "STAT"},
}

func TestRequirementService_UploadAndEffective(t *testing.T) {
	store := newFakeRequirementStore(testDoc())
	svc := NewRequirementService(store, serviceDefaults)
	userID := uuid.New()

	// Before upload the default document governs.
	doc, custom, err := svc.GetEffective(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, custom)
	assert.Equal(t, "Bachelor of Computer Science", doc.Name)

	uploaded, err := svc.Upload(context.Background(), userID, degree.RawDocument{
		Name: "Combinatorics Option",
		Requirements: []degree.RawRequirement{
			{Description: "Enumeration", Options: []interface{}{"co 330"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CO330"}, uploaded.Requirements[0].Options)

	doc, custom, err = svc.GetEffective(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, custom)
	assert.Equal(t, "Combinatorics Option", doc.Name)
}

func TestRequirementService_UploadInvalidStoresNothing(t *testing.T) {
	store := newFakeRequirementStore(testDoc())
	svc := NewRequirementService(store, serviceDefaults)
	userID := uuid.New()

	_, err := svc.Upload(context.Background(), userID, degree.RawDocument{
		Requirements: []degree.RawRequirement{
			{Description: "Broken", Options: []interface{}{}},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, degree.ErrInvalidDocument)
	assert.Empty(t, store.userDocs)
}

func TestRequirementService_Reset(t *testing.T) {
	store := newFakeRequirementStore(testDoc())
	svc := NewRequirementService(store, serviceDefaults)
	userID := uuid.New()

	_, err := svc.Upload(context.Background(), userID, degree.RawDocument{
		Requirements: []degree.RawRequirement{{Options: []interface{}{"CS135"}}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(context.Background(), userID))
	_, custom, err := svc.GetEffective(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, custom)

	// Resetting twice is fine.
	require.NoError(t, svc.Reset(context.Background(), userID))
}
