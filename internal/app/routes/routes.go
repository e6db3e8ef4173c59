package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eren/coursemap/internal/app/controllers"
	"github.com/eren/coursemap/internal/app/models/dto"
	"github.com/eren/coursemap/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	planController *controllers.PlanController,
	requirementController *controllers.RequirementController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/google", authController.GoogleLogin)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:code", courseController.GetCourseByCode)
		}

		plan := authenticated.Group("/plan")
		{
			plan.GET("", planController.GetPlan)
			plan.GET("/fulfillment", planController.GetFulfillment)
			plan.POST("/import", planController.ImportPlan)
			plan.PUT("/:code", planController.UpsertEntry)
			plan.DELETE("/:code", planController.DeleteEntry)
		}

		requirements := authenticated.Group("/requirements")
		{
			requirements.GET("", requirementController.GetRequirements)
			requirements.POST("", requirementController.UploadRequirements)
			requirements.DELETE("", requirementController.ResetRequirements)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
