package trainingValidator

import (
	"github.com/gofiber/fiber/v2"
)

// VideoComplete validates the path parameters for marking a video complete
func VideoComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "training_id", "trainingID", "Training ID"); err != nil {
			return err
		}
		if _, err := paramID(c, "module_id", "moduleID", "Module ID"); err != nil {
			return err
		}
		if _, err := paramID(c, "video_id", "videoID", "Video ID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// ProgressTrainingID validates the training id parameter on progress routes
func ProgressTrainingID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "training_id", "trainingID", "Training ID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// ProgressModuleID validates training and module id parameters on progress routes
func ProgressModuleID() fiber.Handler {
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

// TargetUserID validates the user id parameter on admin progress lookups
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := paramID(c, "user_id", "targetUserID", "User ID"); err != nil {
			return err
		}
		return c.Next()
	}
}
