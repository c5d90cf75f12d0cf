package trainingValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// paramID parses a positive integer path parameter into c.Locals(localKey)
func paramID(c *fiber.Ctx, param, localKey, label string) (int, error) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}
	c.Locals(localKey, id)
	return id, nil
}

// CreateTraining validates admin training creation request
func CreateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string     `json:"name"`
			Description  string     `json:"description"`
			Type         string     `json:"type"`
			DeadlineDays int        `json:"deadline_days"`
			DeadlineDate *time.Time `json:"deadline_date"`
			Designations string     `json:"designations"`
			Branches     string     `json:"branches"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Type = strings.TrimSpace(reqData.Type)

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.Type == "" {
			reqData.Type = "Assigned"
		} else if reqData.Type != "Mandatory" && reqData.Type != "Assigned" {
			errors["type"] = "Type must be Mandatory or Assigned!"
		}

		if reqData.DeadlineDays < 0 {
			errors["deadline_days"] = "Deadline days must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTraining", reqData)
		return c.Next()
	}
}

// UpdateTraining validates admin training update request
func UpdateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "trainingID", "Training ID"); err != nil {
			return err
		}

		reqData := new(struct {
			Name         string     `json:"name"`
			Description  string     `json:"description"`
			Type         string     `json:"type"`
			DeadlineDays int        `json:"deadline_days"`
			DeadlineDate *time.Time `json:"deadline_date"`
			Designations string     `json:"designations"`
			Branches     string     `json:"branches"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Type = strings.TrimSpace(reqData.Type)

		if reqData.Name != "" && len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Type != "" && reqData.Type != "Mandatory" && reqData.Type != "Assigned" {
			errors["type"] = "Type must be Mandatory or Assigned!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTrainingUpdate", reqData)
		return c.Next()
	}
}

// TrainingID validates a training id path parameter
func TrainingID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "trainingID", "Training ID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// TrainingList validates the pagination query for training listings
func TrainingList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Page != nil && reqData.Limit != nil && *reqData.Page > 0 && *reqData.Limit > 0 {
			c.Locals("validatedTrainingList", reqData)
		}
		return c.Next()
	}
}

// AssignTraining validates the {assigned_to, training_id} assignment body
func AssignTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AssignedTo []uint `json:"assigned_to"`
			TrainingID uint   `json:"training_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.AssignedTo) == 0 {
			errors["assigned_to"] = "At least one user is required!"
		}
		if reqData.TrainingID == 0 {
			errors["training_id"] = "Training ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}
