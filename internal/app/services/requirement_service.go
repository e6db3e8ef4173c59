package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/degree"
)

// requirementStore is the slice of the requirement repository this service
// needs; tests substitute a fake.
type requirementStore interface {
	GetDefault(ctx context.Context) (*models.StoredRequirementDocument, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.StoredRequirementDocument, error)
	UpsertForUser(ctx context.Context, userID uuid.UUID, doc *degree.RequirementDocument) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

// RequirementService manages requirement documents: the seeded default and
// per-user uploads. Uploaded documents are normalized once, at upload time,
// and are read-only afterwards.
type RequirementService struct {
	requirementRepo requirementStore
	defaults        degree.ProgramDefaults
}

// NewRequirementService creates a new requirement service instance
func NewRequirementService(requirementRepo requirementStore, defaults degree.ProgramDefaults) *RequirementService {
	return &RequirementService{
		requirementRepo: requirementRepo,
		defaults:        defaults,
	}
}

// Upload validates and stores a user's requirement document. Validation
// failures surface immediately with a message naming the offending
// requirement; nothing is stored on failure.
func (s *RequirementService) Upload(ctx context.Context, userID uuid.UUID, raw degree.RawDocument) (*degree.RequirementDocument, error) {
	doc, err := degree.NormalizeDocument(raw, s.defaults)
	if err != nil {
		return nil, err
	}

	if err := s.requirementRepo.UpsertForUser(ctx, userID, doc); err != nil {
		return nil, fmt.Errorf("error storing requirement document: %w", err)
	}

	return doc, nil
}

// GetEffective returns the document governing a user's plan: their uploaded
// one when present, the seeded default otherwise. custom reports which.
func (s *RequirementService) GetEffective(ctx context.Context, userID uuid.UUID) (doc *degree.RequirementDocument, custom bool, err error) {
	stored, err := s.requirementRepo.GetByUser(ctx, userID)
	if err == nil {
		return stored.Document, true, nil
	}
	if !errors.Is(err, repositories.ErrRequirementDocNotFound) {
		return nil, false, fmt.Errorf("error retrieving requirement document: %w", err)
	}

	stored, err = s.requirementRepo.GetDefault(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("error retrieving default requirement document: %w", err)
	}

	return stored.Document, false, nil
}

// Reset deletes the user's uploaded document, reverting them to the default.
// Resetting when no upload exists is not an error.
func (s *RequirementService) Reset(ctx context.Context, userID uuid.UUID) error {
	err := s.requirementRepo.DeleteForUser(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrRequirementDocNotFound) {
		return fmt.Errorf("error resetting requirement document: %w", err)
	}
	return nil
}
