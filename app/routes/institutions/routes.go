package institutions

import (
	"github.com/gofiber/fiber/v2"

	"scolapay/app/models"
	"scolapay/app/routes/auth"
)

func SetupInstitutionsRoutes(app *fiber.App) {
	api := app.Group("/institutions")
	api.Use(auth.AuthMiddleware)

	// All staff can read; only admins mutate.
	api.Get("/", GetInstitutionsAPI)
	api.Get("/:id", GetInstitutionByIDAPI)

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreateInstitutionAPI)
	api.Put("/:id", admin, UpdateInstitutionAPI)
	api.Delete("/:id", admin, DeleteInstitutionAPI)
}
