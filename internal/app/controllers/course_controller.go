package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/services"
	"github.com/eren/coursemap/internal/middleware"
)

// CourseController handles catalog browsing operations
type CourseController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(catalogService *services.CatalogService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetAllCourses lists catalog courses
// @Summary List catalog courses
// @Description Lists active courses with optional subject, text search and requirement-flag filtering. Flags reflect the caller's effective requirement document.
// @Tags courses
// @Produce json
// @Param subject query string false "Subject code filter, e.g. CS"
// @Param search query string false "Case insensitive match against code and title"
// @Param required query bool false "Only courses listed as a requirement option"
// @Param relevant query bool false "Only courses in a relevant subject"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.PaginatedResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var filter dto.CourseFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid course filter")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	courses, pagination, err := c.catalogService.ListCourses(ctx.Request.Context(), userID, filter)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list courses")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Data:       courses,
		Pagination: pagination,
		Timestamp:  time.Now(),
	})
}

// GetCourseByCode retrieves a single course
// @Summary Get a course by code
// @Description Retrieves the active catalog entry for a course code. The code is normalized, so "cs 135" resolves to CS135.
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /courses/{code} [get]
func (c *CourseController) GetCourseByCode(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.catalogService.GetCourse(ctx.Request.Context(), userID, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}
