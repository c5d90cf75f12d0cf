package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	trainingModels "lms/models/training"
	progressService "lms/services/progress"
	"lms/utils"
)

// errDetail exposes the raw error only when debug mode is on; user-facing
// responses otherwise carry just the generic message.
func errDetail(err error) interface{} {
	if err != nil && config.AppConfig != nil && config.AppConfig.Debug {
		return fiber.Map{"error": err.Error()}
	}
	return nil
}

// AdminCreateTraining creates a new training program
func AdminCreateTraining(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTraining").(*struct {
		Name         string     `json:"name"`
		Description  string     `json:"description"`
		Type         string     `json:"type"`
		DeadlineDays int        `json:"deadline_days"`
		DeadlineDate *time.Time `json:"deadline_date"`
		Designations string     `json:"designations"`
		Branches     string     `json:"branches"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	training := trainingModels.Training{
		Name:         reqData.Name,
		Description:  reqData.Description,
		Type:         reqData.Type,
		DeadlineDays: reqData.DeadlineDays,
		DeadlineDate: reqData.DeadlineDate,
		Designations: reqData.Designations,
		Branches:     reqData.Branches,
	}

	if err := database.Database.Db.Create(&training).Error; err != nil {
		log.Printf("Error creating training: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create training!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Training created successfully!", training)
}

// AdminUpdateTraining updates an existing training
func AdminUpdateTraining(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)

	var training trainingModels.Training
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	reqData, ok := c.Locals("validatedTrainingUpdate").(*struct {
		Name         string     `json:"name"`
		Description  string     `json:"description"`
		Type         string     `json:"type"`
		DeadlineDays int        `json:"deadline_days"`
		DeadlineDate *time.Time `json:"deadline_date"`
		Designations string     `json:"designations"`
		Branches     string     `json:"branches"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Name != "" {
		training.Name = reqData.Name
	}
	if reqData.Description != "" {
		training.Description = reqData.Description
	}
	if reqData.Type != "" {
		training.Type = reqData.Type
	}
	if reqData.DeadlineDays > 0 {
		training.DeadlineDays = reqData.DeadlineDays
	}
	if reqData.DeadlineDate != nil {
		training.DeadlineDate = reqData.DeadlineDate
	}
	if reqData.Designations != "" {
		training.Designations = reqData.Designations
	}
	if reqData.Branches != "" {
		training.Branches = reqData.Branches
	}

	if err := database.Database.Db.Save(&training).Error; err != nil {
		log.Printf("Error updating training %d: %v", trainingID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update training!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training updated successfully!", training)
}

// AdminDeleteTraining removes a training along with every progress record
// and user training entry that references it
func AdminDeleteTraining(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)

	if err := progressService.DeleteTrainingCascade(database.Database.Db, uint(trainingID)); err != nil {
		log.Printf("Error deleting training %d: %v", trainingID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete training!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training deleted successfully!", nil)
}

// AdminGetAllTrainings lists trainings with pagination
func AdminGetAllTrainings(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTrainingList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	db := database.Database.Db.Model(&trainingModels.Training{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var trainings []trainingModels.Training
	if !ok {
		if err := db.Order("created_at desc").Find(&trainings).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", errDetail(err))
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
			"trainings": trainings,
			"pagination": fiber.Map{
				"total": total,
				"page":  1,
				"limit": len(trainings),
			},
		})
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&trainings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
		"trainings": trainings,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminAssignTraining assigns a training to a list of users
func AdminAssignTraining(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*struct {
		AssignedTo []uint `json:"assigned_to"`
		TrainingID uint   `json:"training_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var training trainingModels.Training
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TrainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	var users []models.User
	if err := db.Where("id IN ? AND is_deleted = ?", reqData.AssignedTo, false).Find(&users).Error; err != nil || len(users) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No matching users found!", nil)
	}

	for _, user := range users {
		record, err := progressService.AssignTraining(db, user.ID, training.ID, nil)
		if err != nil {
			log.Printf("Error assigning training %d to user %d: %v", training.ID, user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign training!", errDetail(err))
		}

		go func(u models.User, deadline *time.Time) {
			if err := utils.SendTrainingAssignedEmail(u.Email, u.Name, training.Name, deadline); err != nil {
				log.Printf("Error sending assignment email to %s: %v", u.Email, err)
			}
		}(user, record.Deadline)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training assigned successfully!", nil)
}

// AdminReassignTraining resets progress for the given users and recreates it
// from the current training definition
func AdminReassignTraining(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*struct {
		AssignedTo []uint `json:"assigned_to"`
		TrainingID uint   `json:"training_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var training trainingModels.Training
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TrainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	var userCount int64
	db.Model(&models.User{}).Where("id IN ? AND is_deleted = ?", reqData.AssignedTo, false).Count(&userCount)
	if userCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No matching users found!", nil)
	}

	if err := progressService.ReassignTraining(db, reqData.AssignedTo, training.ID); err != nil {
		log.Printf("Error reassigning training %d: %v", training.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reassign training!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training reassigned successfully!", nil)
}
