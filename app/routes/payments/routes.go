package payments

import (
	"github.com/gofiber/fiber/v2"

	"scolapay/app/models"
	"scolapay/app/routes/auth"
)

func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/payments")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAccountant, models.RoleAdmin))

	api.Get("/", GetPaymentsAPI)
	api.Post("/", CreatePaymentAPI)
	api.Patch("/:paymentId/status", UpdatePaymentStatusAPI)
	api.Post("/:paymentId/cancel", CancelPaymentAPI)
}
