package trainingValidator

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateAssessment validates the create-assessment payload
func CreateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.DeadlineDays < 0 {
			errors["deadline_days"] = "Deadline days must not be negative!"
		}

		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}

// AssignAssessment validates an assessment assignment request
func AssignAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AssignedTo   []uint `json:"assigned_to"`
			AssessmentID uint   `json:"assessment_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.AssessmentID == 0 {
			errors["assessment_id"] = "Assessment ID is required!"
		}
		if len(reqData.AssignedTo) == 0 {
			errors["assigned_to"] = "At least one user is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessmentAssignment", reqData)
		return c.Next()
	}
}
