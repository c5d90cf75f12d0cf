package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	progressModels "lms/models/progress"
	trainingModels "lms/models/training"
	progressService "lms/services/progress"
)

// AdminTrainingDashboard reports assignment and completion stats for one
// training
func AdminTrainingDashboard(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)

	db := database.Database.Db

	var training trainingModels.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	var assigned, completed, inProgress, pending int64
	db.Model(&progressModels.TrainingProgress{}).Where("training_id = ?", trainingID).Count(&assigned)
	db.Model(&progressModels.TrainingProgress{}).Where("training_id = ? AND status = ?", trainingID, progressModels.StatusCompleted).Count(&completed)
	db.Model(&progressModels.TrainingProgress{}).Where("training_id = ? AND status = ?", trainingID, progressModels.StatusInProgress).Count(&inProgress)
	db.Model(&progressModels.TrainingProgress{}).Where("training_id = ? AND status = ?", trainingID, progressModels.StatusPending).Count(&pending)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"training": training,
		"stats": fiber.Map{
			"assigned":    assigned,
			"completed":   completed,
			"in_progress": inProgress,
			"pending":     pending,
		},
	})
}

// AdminGetUserProgress lists one user's trainings with percentages, for the
// per-employee dashboard view
func AdminGetUserProgress(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	db := database.Database.Db

	var target models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var records []progressModels.TrainingProgress
	if err := db.Preload("Modules").Preload("Modules.Videos").
		Where("user_id = ?", targetID).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", errDetail(err))
	}

	type ProgressSummary struct {
		TrainingID   uint   `json:"training_id"`
		TrainingName string `json:"training_name"`
		Status       string `json:"status"`
		Pass         bool   `json:"pass"`
		Percentage   string `json:"percentage"`
	}

	summaries := make([]ProgressSummary, len(records))
	percentages := make([]float64, len(records))
	for i := range records {
		value := progressService.TrainingPercentValue(&records[i])
		percentages[i] = value
		summaries[i] = ProgressSummary{
			TrainingID:   records[i].TrainingID,
			TrainingName: records[i].TrainingName,
			Status:       records[i].Status,
			Pass:         records[i].Pass,
			Percentage:   progressService.FormatPercent(value),
		}
	}

	target.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User progress fetched successfully!", fiber.Map{
		"user":      target,
		"trainings": summaries,
		"overall":   progressService.ComputeUserOverallPercentage(percentages),
	})
}
