package trainingRoutes

import (
	controllers "lms/controllers/training"
	"lms/middleware"
	validators "lms/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminTrainingRoutes sets up all admin training management routes
func SetupAdminTrainingRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/training")

	// Training CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, validators.CreateTraining(), controllers.AdminCreateTraining)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.UpdateTraining(), controllers.AdminUpdateTraining)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.TrainingID(), controllers.AdminDeleteTraining)
	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.AdminOnly, validators.TrainingList(), controllers.AdminGetAllTrainings)

	// Assignment
	adminGroup.Post("/assign", middleware.JWTMiddleware, middleware.AdminOnly, validators.AssignTraining(), controllers.AdminAssignTraining)
	adminGroup.Post("/reassign", middleware.JWTMiddleware, middleware.AdminOnly, validators.AssignTraining(), controllers.AdminReassignTraining)

	// Module management
	adminGroup.Post("/:id/module", middleware.JWTMiddleware, middleware.AdminOnly, validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Put("/:training_id/module/:module_id", middleware.JWTMiddleware, middleware.AdminOnly, validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:training_id/module/:module_id", middleware.JWTMiddleware, middleware.AdminOnly, validators.ModuleID(), controllers.AdminDeleteModule)
	adminGroup.Get("/:id/modules", middleware.JWTMiddleware, middleware.AdminOnly, validators.TrainingID(), controllers.AdminListModules)

	// Dashboard
	adminGroup.Get("/:id/dashboard", middleware.JWTMiddleware, middleware.AdminOnly, validators.TrainingID(), controllers.AdminTrainingDashboard)

	userGroup := app.Group("/admin/user")
	userGroup.Get("/:user_id/progress", middleware.JWTMiddleware, middleware.AdminOnly, validators.TargetUserID(), controllers.AdminGetUserProgress)

	// Assessments
	assessGroup := app.Group("/admin/assessment")
	assessGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, validators.CreateAssessment(), controllers.AdminCreateAssessment)
	assessGroup.Post("/assign", middleware.JWTMiddleware, middleware.AdminOnly, validators.AssignAssessment(), controllers.AdminAssignAssessment)

	// Data repair
	migrationGroup := app.Group("/admin/migration")
	migrationGroup.Post("/foundation", middleware.JWTMiddleware, middleware.AdminOnly, controllers.RunFoundationMigration)
	migrationGroup.Post("/backfill", middleware.JWTMiddleware, middleware.AdminOnly, controllers.RunBackfill)
}
