package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	trainingModels "lms/models/training"
)

// ModulePayload is the validated create-module request: a module with its
// ordered videos, each optionally carrying assessment questions.
type ModulePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
	Videos      []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Questions []struct {
			QuestionText  string `json:"question_text"`
			OptionA       string `json:"option_a"`
			OptionB       string `json:"option_b"`
			OptionC       string `json:"option_c"`
			OptionD       string `json:"option_d"`
			CorrectAnswer string `json:"correct_answer"`
		} `json:"questions"`
	} `json:"videos"`
}

// AdminCreateModule adds a module (with videos and optional questions) to a
// training. If any question in the payload is incomplete the entire question
// set of the module is discarded; the module and videos are still created.
func AdminCreateModule(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)

	var training trainingModels.Training
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*ModulePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Validate the question set up front: one incomplete question drops all
	questionsValid := true
	for _, v := range reqData.Videos {
		for _, q := range v.Questions {
			question := trainingModels.Question{
				QuestionText:  q.QuestionText,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectAnswer: q.CorrectAnswer,
			}
			if !question.Complete() {
				questionsValid = false
			}
		}
	}

	module := trainingModels.Module{
		TrainingID:  uint(trainingID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&module).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating module for training %d: %v", trainingID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", errDetail(err))
	}

	for vi, v := range reqData.Videos {
		video := trainingModels.Video{
			ModuleID:   module.ID,
			Title:      v.Title,
			URL:        v.URL,
			OrderIndex: vi,
		}
		if err := tx.Create(&video).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating video for module %d: %v", module.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", errDetail(err))
		}

		if !questionsValid {
			continue
		}
		for _, q := range v.Questions {
			question := trainingModels.Question{
				VideoID:       video.ID,
				QuestionText:  q.QuestionText,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectAnswer: q.CorrectAnswer,
			}
			if err := tx.Create(&question).Error; err != nil {
				tx.Rollback()
				log.Printf("Error creating question for video %d: %v", video.ID, err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", errDetail(err))
			}
		}
	}
	tx.Commit()

	message := "Module created successfully!"
	if !questionsValid {
		message = "Module created; incomplete questions were discarded."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, module)
}

// AdminUpdateModule updates a module's title/description/order
func AdminUpdateModule(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module trainingModels.Module
	if err := database.Database.Db.Where("id = ? AND training_id = ? AND is_deleted = ?", moduleID, trainingID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.OrderIndex != nil {
		module.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		log.Printf("Error updating module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", errDetail(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft deletes a module and its videos
func AdminDeleteModule(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module trainingModels.Module
	if err := database.Database.Db.Where("id = ? AND training_id = ? AND is_deleted = ?", moduleID, trainingID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Model(&trainingModels.Module{}).Where("id = ?", module.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", errDetail(err))
	}
	if err := tx.Model(&trainingModels.Video{}).Where("module_id = ?", module.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", errDetail(err))
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminListModules lists a training's modules with their videos
func AdminListModules(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(int)

	var training trainingModels.Training
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	var modules []trainingModels.Module
	database.Database.Db.Where("training_id = ? AND is_deleted = ?", trainingID, false).Order("order_index asc").Find(&modules)

	type ModuleWithVideos struct {
		trainingModels.Module
		Videos []trainingModels.Video `json:"videos"`
	}

	result := make([]ModuleWithVideos, len(modules))
	for i, mod := range modules {
		result[i] = ModuleWithVideos{Module: mod}
		database.Database.Db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).Order("order_index asc").Find(&result[i].Videos)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"training": training,
		"modules":  result,
	})
}
