package students

import (
	"github.com/gofiber/fiber/v2"

	"scolapay/app/models"
	"scolapay/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/students")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin, models.RoleSecretary, models.RoleAccountant))

	api.Get("/", GetStudentsAPI)
	api.Get("/stats", GetStudentsStatsAPI)
	api.Get("/:id", GetStudentByIDAPI)

	// The accountant reads students for payment entry; only the
	// registration staff mutate them.
	registrar := auth.RoleMiddleware(models.RoleAdmin, models.RoleSecretary)
	api.Post("/", registrar, CreateStudentAPI)
	api.Put("/:id", registrar, UpdateStudentAPI)
	api.Delete("/:id", registrar, DeleteStudentAPI)
}
