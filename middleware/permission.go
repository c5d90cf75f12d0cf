package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/models"
)

// AdminOnly ensures the authenticated user holds the ADMIN role. It re-reads
// the user so a revoked role takes effect before the token expires.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	c.Locals("adminUser", user)
	return c.Next()
}
