package trainingValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	trainingControllers "lms/controllers/training"
	"lms/middleware"
)

// CreateModule validates the nested module payload (videos + questions)
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "id", "trainingID", "Training ID"); err != nil {
			return err
		}

		reqData := new(trainingControllers.ModulePayload)
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

		if len(reqData.Videos) == 0 {
			errors["videos"] = "At least one video is required!"
		}
		for _, v := range reqData.Videos {
			if strings.TrimSpace(v.Title) == "" {
				errors["videos"] = "Every video needs a title!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates a module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "training_id", "trainingID", "Training ID"); err != nil {
			return err
		}
		if _, err := paramID(c, "module_id", "moduleID", "Module ID"); err != nil {
			return err
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// ModuleID validates training and module id path parameters
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "training_id", "trainingID", "Training ID"); err != nil {
			return err
		}
		if _, err := paramID(c, "module_id", "moduleID", "Module ID"); err != nil {
			return err
		}
		return c.Next()
	}
}
