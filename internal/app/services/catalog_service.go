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
	"github.com/eren/coursemap/internal/pkg/helpers"
)

// courseReader is the slice of the course repository the browse path needs.
type courseReader interface {
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, filter dto.CourseFilter) ([]*models.Course, int64, error)
	ListMatching(ctx context.Context, subject, search string) ([]*models.Course, error)
}

// CatalogService serves the course catalog to the browsing UI. The
// required/relevant flags it reports always come from degree.TagCourse
// against the caller's effective requirement document, the same function the
// sync job persists flags with, so the two views cannot drift apart.
type CatalogService struct {
	courseRepo         courseReader
	requirementService effectiveDocumentSource
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(courseRepo courseReader, requirementService effectiveDocumentSource) *CatalogService {
	return &CatalogService{
		courseRepo:         courseRepo,
		requirementService: requirementService,
	}
}

// GetCourse retrieves one active catalog course, tagged for the caller.
func (s *CatalogService) GetCourse(ctx context.Context, userID uuid.UUID, code string) (*dto.CourseResponse, error) {
	normalized := degree.NormalizeCourseCode(code)
	if normalized == "" {
		return nil, apperrors.NewValidationError("course code cannot be blank")
	}

	doc, _, err := s.requirementService.GetEffective(ctx, userID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	resp := courseResponse(course, doc.RequiredOptions(), doc.SubjectSet())
	return &resp, nil
}

// ListCourses retrieves a page of active catalog courses matching the filter.
// When the caller has a custom document, the required/relevant filters cannot
// be answered by the persisted columns (those reflect the default document),
// so the matching rows are retagged and filtered in memory instead.
func (s *CatalogService) ListCourses(ctx context.Context, userID uuid.UUID, filter dto.CourseFilter) ([]dto.CourseResponse, dto.PaginationInfo, error) {
	doc, custom, err := s.requirementService.GetEffective(ctx, userID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	required := doc.RequiredOptions()
	subjects := doc.SubjectSet()

	if custom && (filter.RequiredOnly || filter.RelevantOnly) {
		return s.listRetagged(ctx, filter, required, subjects)
	}

	courses, total, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, courseResponse(course, required, subjects))
	}

	return responses, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

func (s *CatalogService) listRetagged(ctx context.Context, filter dto.CourseFilter, required, subjects map[string]struct{}) ([]dto.CourseResponse, dto.PaginationInfo, error) {
	courses, err := s.courseRepo.ListMatching(ctx, filter.Subject, filter.Search)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing courses: %w", err)
	}

	matches := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp := courseResponse(course, required, subjects)
		if filter.RequiredOnly && !resp.Required {
			continue
		}
		if filter.RelevantOnly && !resp.Relevant {
			continue
		}
		matches = append(matches, resp)
	}

	start, end := helpers.CalculateSliceIndices(filter.Page, filter.PageSize, len(matches))
	info := helpers.NewPaginationInfo(int64(len(matches)), filter.Page, filter.PageSize)
	return matches[start:end], info, nil
}

func courseResponse(course *models.Course, required, subjects map[string]struct{}) dto.CourseResponse {
	isRequired, isRelevant := degree.TagCourse(course.Code, required, subjects)
	return dto.CourseResponse{
		Code:          course.Code,
		TermCode:      course.TermCode,
		SubjectCode:   course.SubjectCode,
		CatalogNumber: course.CatalogNumber,
		Title:         course.Title,
		Description:   course.Description,
		Prerequisites: course.Prerequisites,
		GradingBasis:  course.GradingBasis,
		ComponentCode: course.ComponentCode,
		Required:      isRequired,
		Relevant:      isRelevant,
	}
}
