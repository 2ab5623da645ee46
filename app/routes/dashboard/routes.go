package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"scolapay/app/config"
	"scolapay/app/database"
	"scolapay/app/models"
	"scolapay/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin))

	api.Get("/stats", GetStatsAPI)
}

func GetStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
