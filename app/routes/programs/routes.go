package programs

import (
	"github.com/gofiber/fiber/v2"

	"scolapay/app/models"
	"scolapay/app/routes/auth"
)

func SetupProgramsRoutes(app *fiber.App) {
	api := app.Group("/programs")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetProgramsAPI)
	api.Get("/:id", GetProgramByIDAPI)

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreateProgramAPI)
	api.Put("/:id", admin, UpdateProgramAPI)
	api.Delete("/:id", admin, DeleteProgramAPI)
}
