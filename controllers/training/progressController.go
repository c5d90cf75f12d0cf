package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	trainingModels "lms/models/training"
	progressService "lms/services/progress"
	"lms/utils"
)

// MarkVideoComplete records a video completion and cascades the rollup. The
// call is idempotent: completing an already-completed video is a success.
func MarkVideoComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	trainingID := c.Locals("trainingID").(int)
	moduleID := c.Locals("moduleID").(int)
	videoID := c.Locals("videoID").(int)

	db := database.Database.Db

	result, err := progressService.MarkVideoComplete(db, userID, uint(trainingID), uint(moduleID), uint(videoID))
	if err != nil {
		switch {
		case errors.Is(err, progressService.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		case errors.Is(err, progressService.ErrProgressNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training progress not found!", nil)
		case errors.Is(err, progressService.ErrModuleNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		case errors.Is(err, progressService.ErrVideoNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
		}
		log.Printf("Error marking video %d complete for user %d training %d: %v", videoID, userID, trainingID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", errDetail(err))
	}

	if result.JustCompleted {
		go notifyTrainingCompleted(userID, uint(trainingID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video marked as completed!", fiber.Map{
		"progress":      result.Progress,
		"user_training": result.Entry,
		"percentage":    progressService.ComputeTrainingPercentage(result.Progress),
	})
}

// notifyTrainingCompleted hands the completion off to the email/WhatsApp
// collaborators; failures are logged, never surfaced to the caller
func notifyTrainingCompleted(userID, trainingID uint) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		log.Printf("Error fetching user %d for completion notification: %v", userID, err)
		return
	}

	var training trainingModels.Training
	if err := db.Where("id = ?", trainingID).First(&training).Error; err != nil {
		log.Printf("Error fetching training %d for completion notification: %v", trainingID, err)
		return
	}

	if err := utils.SendTrainingCompletedEmail(user.Email, user.Name, user.EmpID, training.Name, user.Branch); err != nil {
		log.Printf("Error sending completion email to %s: %v", user.Email, err)
	}
	if user.Mobile != "" {
		utils.SendWhatsappMessage(user.Mobile, "Congratulations! You have completed the training \""+training.Name+"\".")
	}
}

// GetTrainingProgress returns the full progress tree with the training-level
// completion percentage
func GetTrainingProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	trainingID := c.Locals("trainingID").(int)

	record, err := progressService.LoadProgress(database.Database.Db, userID, uint(trainingID))
	if err != nil {
		if errors.Is(err, progressService.ErrProgressNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training progress not found!", nil)
		}
		log.Printf("Error loading progress for user %d training %d: %v", userID, trainingID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":   record,
		"percentage": progressService.ComputeTrainingPercentage(record),
	})
}

// GetModuleProgress returns one module's progress subtree alongside its
// definition and video completion percentage
func GetModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	trainingID := c.Locals("trainingID").(int)
	moduleID := c.Locals("moduleID").(int)

	record, err := progressService.LoadProgress(database.Database.Db, userID, uint(trainingID))
	if err != nil {
		if errors.Is(err, progressService.ErrProgressNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training progress not found!", nil)
		}
		log.Printf("Error loading progress for user %d training %d: %v", userID, trainingID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", errDetail(err))
	}

	for i := range record.Modules {
		if record.Modules[i].ModuleID == uint(moduleID) {
			// The catalog row can be gone even though the snapshot still
			// references it; treat that as module not found
			var module trainingModels.Module
			if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
				break
			}

			var videos []trainingModels.Video
			if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
				Order("order_index asc").Find(&videos).Error; err != nil {
				log.Printf("Error loading videos for module %d: %v", moduleID, err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", errDetail(err))
			}

			return middleware.JsonResponse(c, fiber.StatusOK, true, "Module progress fetched successfully!", fiber.Map{
				"module":          module,
				"videos":          videos,
				"module_progress": record.Modules[i],
				"percentage":      progressService.ComputeModulePercentage(&record.Modules[i]),
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
}

// GetMyTrainings lists the user's assigned trainings with per-training and
// overall completion percentages
func GetMyTrainings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var entries []models.UserTraining
	if err := db.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", errDetail(err))
	}

	type TrainingSummary struct {
		models.UserTraining
		TrainingName string `json:"training_name"`
		Percentage   string `json:"percentage"`
	}

	result := make([]TrainingSummary, 0, len(entries))
	percentages := make([]float64, 0, len(entries))
	for _, entry := range entries {
		summary := TrainingSummary{UserTraining: entry, Percentage: "0.00"}

		var training trainingModels.Training
		if err := db.Where("id = ?", entry.TrainingID).First(&training).Error; err == nil {
			summary.TrainingName = training.Name
		}

		if record, err := progressService.LoadProgress(db, userID, entry.TrainingID); err == nil {
			value := progressService.TrainingPercentValue(record)
			summary.Percentage = progressService.FormatPercent(value)
			percentages = append(percentages, value)
		}

		result = append(result, summary)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
		"trainings": result,
		"overall":   progressService.ComputeUserOverallPercentage(percentages),
	})
}
