package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/services"
	"github.com/eren/coursemap/internal/middleware"
)

// PlanController handles course plan operations
type PlanController struct {
	planService *services.PlanService
	logger      zerolog.Logger
}

// NewPlanController creates a new PlanController
func NewPlanController(planService *services.PlanService, logger zerolog.Logger) *PlanController {
	return &PlanController{
		planService: planService,
		logger:      logger,
	}
}

func planEntryResponse(entry *models.PlanEntry) dto.PlanEntryResponse {
	return dto.PlanEntryResponse{
		CourseCode: entry.CourseCode,
		Term:       entry.Term,
		Completed:  entry.Completed,
	}
}

// GetPlan lists the caller's plan entries
// @Summary Get the course plan
// @Description Lists the caller's plan entries in insertion order.
// @Tags plan
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PlanEntryResponse} "Plan retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /plan [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	entries, err := c.planService.ListEntries(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list plan entries")
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.PlanEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, planEntryResponse(entry))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// UpsertEntry creates or replaces one plan entry
// @Summary Add or update a plan entry
// @Description Creates or replaces the plan entry for a course code. Re-adding an existing course overwrites its term and completion status.
// @Tags plan
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param request body dto.UpsertPlanEntryRequest true "Entry fields"
// @Success 200 {object} dto.APIResponse{data=dto.PlanEntryResponse} "Entry stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank course code"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /plan/{code} [put]
func (c *PlanController) UpsertEntry(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpsertPlanEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid plan entry payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entry, err := c.planService.UpsertEntry(ctx.Request.Context(), userID, ctx.Param("code"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      planEntryResponse(entry),
		Timestamp: time.Now(),
	})
}

// DeleteEntry removes one plan entry
// @Summary Remove a plan entry
// @Description Deletes the plan entry for a course code.
// @Tags plan
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Entry removed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Plan entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /plan/{code} [delete]
func (c *PlanController) DeleteEntry(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.planService.DeleteEntry(ctx.Request.Context(), userID, ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Plan entry removed"},
		Timestamp: time.Now(),
	})
}

// ImportPlan replaces plan entries from an exported document
// @Summary Import plan entries
// @Description Imports a JSON array of plan entries, as produced by common schedule exporters. Course codes may arrive under several key spellings. The import is atomic; one bad entry rejects the whole batch.
// @Tags plan
// @Accept json
// @Produce json
// @Param request body []map[string]interface{} true "Exported plan entries"
// @Success 200 {object} dto.APIResponse{data=dto.PlanImportResult} "Entries imported"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or unusable entry"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /plan/import [post]
func (c *PlanController) ImportPlan(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var raw []map[string]interface{}
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid plan import payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	imported, err := c.planService.Import(ctx.Request.Context(), userID, raw)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Plan import rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int("imported", imported).Str("userID", userID.String()).Msg("Plan imported")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PlanImportResult{Imported: imported},
		Timestamp: time.Now(),
	})
}

// GetFulfillment evaluates the caller's plan against their requirements
// @Summary Get requirement fulfillment
// @Description Evaluates the caller's plan against their effective requirement document and returns per-requirement statuses in document order.
// @Tags plan
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FulfillmentResponse} "Fulfillment evaluated"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /plan/fulfillment [get]
func (c *PlanController) GetFulfillment(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	fulfillment, err := c.planService.Fulfillment(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to evaluate fulfillment")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      fulfillment,
		Timestamp: time.Now(),
	})
}
