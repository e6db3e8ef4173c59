package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/app/services"
	"github.com/eren/coursemap/internal/degree"
	"github.com/eren/coursemap/internal/middleware"
)

// RequirementController handles requirement document operations
type RequirementController struct {
	requirementService *services.RequirementService
	logger             zerolog.Logger
}

// NewRequirementController creates a new RequirementController
func NewRequirementController(requirementService *services.RequirementService, logger zerolog.Logger) *RequirementController {
	return &RequirementController{
		requirementService: requirementService,
		logger:             logger,
	}
}

func documentResponse(doc *degree.RequirementDocument, custom bool) dto.RequirementDocumentResponse {
	return dto.RequirementDocumentResponse{
		Name:             doc.Name,
		RelevantSubjects: doc.RelevantSubjects,
		Requirements:     doc.Requirements,
		Custom:           custom,
	}
}

// GetRequirements returns the caller's effective requirement document
// @Summary Get the effective requirement document
// @Description Returns the caller's uploaded document when present, the program default otherwise.
// @Tags requirements
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RequirementDocumentResponse} "Document retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /requirements [get]
func (c *RequirementController) GetRequirements(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	doc, custom, err := c.requirementService.GetEffective(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to resolve requirement document")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      documentResponse(doc, custom),
		Timestamp: time.Now(),
	})
}

// UploadRequirements stores a custom requirement document for the caller
// @Summary Upload a requirement document
// @Description Validates and stores a custom requirement document, replacing any previous upload. Validation failures name the offending requirement; nothing is stored on failure.
// @Tags requirements
// @Accept json
// @Produce json
// @Param request body dto.UploadRequirementsRequest true "Requirement document"
// @Success 200 {object} dto.APIResponse{data=dto.RequirementDocumentResponse} "Document stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or invalid document"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /requirements [post]
func (c *RequirementController) UploadRequirements(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UploadRequirementsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid requirement document payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	doc, err := c.requirementService.Upload(ctx.Request.Context(), userID, degree.RawDocument(req))
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Requirement document rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userID", userID.String()).Str("name", doc.Name).Msg("Requirement document uploaded")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      documentResponse(doc, true),
		Timestamp: time.Now(),
	})
}

// ResetRequirements reverts the caller to the default document
// @Summary Reset to the default requirement document
// @Description Deletes the caller's uploaded document. Resetting when no upload exists succeeds.
// @Tags requirements
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Document reset"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /requirements [delete]
func (c *RequirementController) ResetRequirements(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.requirementService.Reset(ctx.Request.Context(), userID); err != nil {
		c.logger.Error().Err(err).Msg("Failed to reset requirement document")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Reverted to the default requirement document"},
		Timestamp: time.Now(),
	})
}
