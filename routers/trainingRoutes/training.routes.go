package trainingRoutes

import (
	controllers "lms/controllers/training"
	"lms/middleware"
	validators "lms/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes sets up all user-facing training routes
func SetupTrainingRoutes(app *fiber.App) {
	userGroup := app.Group("/training")

	// Assigned trainings with progress summaries
	userGroup.Get("/my", middleware.JWTMiddleware, controllers.GetMyTrainings)

	// Progress tracking
	userGroup.Get("/:training_id/progress", middleware.JWTMiddleware, validators.ProgressTrainingID(), controllers.GetTrainingProgress)
	userGroup.Get("/:training_id/module/:module_id/progress", middleware.JWTMiddleware, validators.ProgressModuleID(), controllers.GetModuleProgress)

	// Video completion
	userGroup.Post("/:training_id/module/:module_id/video/:video_id/complete", middleware.JWTMiddleware, validators.VideoComplete(), controllers.MarkVideoComplete)

	// Assessments assigned to the logged-in user
	assessGroup := app.Group("/assessment")
	assessGroup.Get("/my", middleware.JWTMiddleware, controllers.GetMyAssessments)
}
