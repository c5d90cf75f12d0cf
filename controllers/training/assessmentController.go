package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	trainingModels "lms/models/training"
)

// AdminCreateAssessment creates a standalone assessment with its questions.
// Incomplete questions discard the whole question set, same as modules.
func AdminCreateAssessment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssessment").(*struct {
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		DeadlineDays int        `json:"deadline_days"`
		DeadlineDate *time.Time `json:"deadline_date"`
		Questions    []struct {
			QuestionText  string `json:"question_text"`
			OptionA       string `json:"option_a"`
			OptionB       string `json:"option_b"`
			OptionC       string `json:"option_c"`
			OptionD       string `json:"option_d"`
			CorrectAnswer string `json:"correct_answer"`
		} `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	questionsValid := true
	for _, q := range reqData.Questions {
		probe := trainingModels.Question{
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: q.CorrectAnswer,
		}
		if !probe.Complete() {
			questionsValid = false
			break
		}
	}

	assessment := trainingModels.Assessment{
		Title:        reqData.Title,
		Description:  reqData.Description,
		DeadlineDays: reqData.DeadlineDays,
		DeadlineDate: reqData.DeadlineDate,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&assessment).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", errDetail(err))
	}

	if questionsValid {
		for _, q := range reqData.Questions {
			question := trainingModels.AssessmentQuestion{
				AssessmentID:  assessment.ID,
				QuestionText:  q.QuestionText,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectAnswer: q.CorrectAnswer,
			}
			if err := tx.Create(&question).Error; err != nil {
				tx.Rollback()
				log.Printf("Error creating assessment question: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", errDetail(err))
			}
		}
	}
	tx.Commit()

	message := "Assessment created successfully!"
	if !questionsValid {
		message = "Assessment created; incomplete questions were discarded."
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, assessment)
}

// AdminAssignAssessment assigns an assessment to a list of users
func AdminAssignAssessment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssessmentAssignment").(*struct {
		AssignedTo   []uint `json:"assigned_to"`
		AssessmentID uint   `json:"assessment_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assessment trainingModels.Assessment
	if err := db.Where("id = ? AND is_deleted = ?", reqData.AssessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	var deadline *time.Time
	if assessment.DeadlineDate != nil {
		deadline = assessment.DeadlineDate
	} else if assessment.DeadlineDays > 0 {
		d := time.Now().AddDate(0, 0, assessment.DeadlineDays)
		deadline = &d
	}

	for _, userID := range reqData.AssignedTo {
		var existing models.UserAssessment
		if err := db.Where("user_id = ? AND assessment_id = ?", userID, assessment.ID).First(&existing).Error; err == nil {
			continue // skip-if-exists
		}
		entry := models.UserAssessment{
			UserID:       userID,
			AssessmentID: assessment.ID,
			Deadline:     deadline,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Error assigning assessment %d to user %d: %v", assessment.ID, userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign assessment!", errDetail(err))
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment assigned successfully!", nil)
}

// GetMyAssessments lists the user's assigned assessments
func GetMyAssessments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var entries []models.UserAssessment
	if err := db.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessments!", errDetail(err))
	}

	type AssessmentSummary struct {
		models.UserAssessment
		Title string `json:"title"`
	}

	result := make([]AssessmentSummary, len(entries))
	for i, entry := range entries {
		result[i] = AssessmentSummary{UserAssessment: entry}
		var assessment trainingModels.Assessment
		if err := db.Where("id = ?", entry.AssessmentID).First(&assessment).Error; err == nil {
			result[i].Title = assessment.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessments fetched successfully!", result)
}
