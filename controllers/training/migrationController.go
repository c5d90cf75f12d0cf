package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	progressService "lms/services/progress"
)

// RunFoundationMigration folds duplicate Assigned-section progress records
// into their Mandatory siblings and reports {moved, merged}
func RunFoundationMigration(c *fiber.Ctx) error {
	result, err := progressService.MergeDuplicateProgress(database.Database.Db, "")
	if err != nil {
		log.Printf("Error running foundation-of-service migration: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Migration failed!", errDetail(err))
	}

	log.Printf("Foundation-of-service migration done: moved=%d merged=%d", result.Moved, result.Merged)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Migration completed successfully!", result)
}

// RunBackfill creates progress records for user training entries that lost
// theirs; existing records are never touched
func RunBackfill(c *fiber.Ctx) error {
	created, err := progressService.BackfillMissingProgress(database.Database.Db)
	if err != nil {
		log.Printf("Error running progress backfill: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Backfill failed!", errDetail(err))
	}

	log.Printf("Progress backfill done: created=%d", created)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Backfill completed successfully!", fiber.Map{
		"created": created,
	})
}
