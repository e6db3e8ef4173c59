package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/repositories"
	"github.com/eren/coursemap/internal/degree"
	"github.com/eren/coursemap/internal/pkg/apperrors"
)

// planStore is the slice of the plan repository this service needs.
type planStore interface {
	Upsert(ctx context.Context, entry *models.PlanEntry) error
	UpsertBatch(ctx context.Context, userID uuid.UUID, entries []degree.PlanImportEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.PlanEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, courseCode string) error
}

// effectiveDocumentSource yields the requirement document governing a user's
// plan. Satisfied by RequirementService.
type effectiveDocumentSource interface {
	GetEffective(ctx context.Context, userID uuid.UUID) (*degree.RequirementDocument, bool, error)
}

// PlanService manages a user's degree plan and its fulfillment report. Every
// operation takes the acting user id explicitly; there is no ambient user.
type PlanService struct {
	planRepo           planStore
	requirementService effectiveDocumentSource
}

// NewPlanService creates a new plan service instance
func NewPlanService(planRepo planStore, requirementService effectiveDocumentSource) *PlanService {
	return &PlanService{
		planRepo:           planRepo,
		requirementService: requirementService,
	}
}

// UpsertEntry creates or replaces one plan entry for the user.
func (s *PlanService) UpsertEntry(ctx context.Context, userID uuid.UUID, courseCode string, req dto.UpsertPlanEntryRequest) (*models.PlanEntry, error) {
	code := degree.NormalizeCourseCode(courseCode)
	if code == "" {
		return nil, apperrors.NewValidationError("course code cannot be blank")
	}

	term := req.Term
	if term == "" {
		term = degree.TermUnscheduled
	}

	entry := &models.PlanEntry{
		UserID:     userID,
		CourseCode: code,
		Term:       term,
		Completed:  req.Completed,
	}

	if err := s.planRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("error saving plan entry: %w", err)
	}

	return entry, nil
}

// ListEntries retrieves the user's plan.
func (s *PlanService) ListEntries(ctx context.Context, userID uuid.UUID) ([]*models.PlanEntry, error) {
	entries, err := s.planRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing plan entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes one course from the user's plan.
func (s *PlanService) DeleteEntry(ctx context.Context, userID uuid.UUID, courseCode string) error {
	code := degree.NormalizeCourseCode(courseCode)
	if code == "" {
		return apperrors.NewValidationError("course code cannot be blank")
	}

	err := s.planRepo.Delete(ctx, userID, code)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanEntryNotFound) {
			return apperrors.ErrPlanEntryNotFound
		}
		return fmt.Errorf("error deleting plan entry: %w", err)
	}
	return nil
}

// Import normalizes an uploaded plan array and writes it in one transaction.
// An invalid element fails the whole import with a message naming its 1-based
// index; nothing is applied. Duplicate codes within the batch resolve to the
// last occurrence.
func (s *PlanService) Import(ctx context.Context, userID uuid.UUID, raw []map[string]interface{}) (int, error) {
	entries, err := degree.NormalizePlanImport(raw)
	if err != nil {
		return 0, err
	}

	if len(entries) == 0 {
		return 0, nil
	}

	if err := s.planRepo.UpsertBatch(ctx, userID, entries); err != nil {
		return 0, fmt.Errorf("error importing plan: %w", err)
	}

	return len(entries), nil
}

// Fulfillment computes the requirement checklist for the user's plan against
// their effective requirement document. Planned and completed courses count
// alike.
func (s *PlanService) Fulfillment(ctx context.Context, userID uuid.UUID) (*dto.FulfillmentResponse, error) {
	doc, _, err := s.requirementService.GetEffective(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.planRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing plan entries: %w", err)
	}

	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		codes = append(codes, entry.CourseCode)
	}

	report := degree.EvaluateFulfillment(degree.CourseCodeSet(codes), doc)

	resp := &dto.FulfillmentResponse{
		Program:      doc.Name,
		Requirements: make([]dto.RequirementStatusDTO, 0, len(report)),
	}
	for _, status := range report {
		resp.Requirements = append(resp.Requirements, dto.RequirementStatusDTO{
			Description: status.Description,
			Fulfilled:   status.Fulfilled,
			FulfilledBy: status.FulfilledBy,
		})
	}

	return resp, nil
}
