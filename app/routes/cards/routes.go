package cards

import (
	"github.com/gofiber/fiber/v2"

	"scolapay/app/models"
	"scolapay/app/routes/auth"
)

// SetupCardsRoutes registers the scan/verify surface. Must run before the
// students routes so the public history page is matched ahead of the
// authenticated /students group middleware.
func SetupCardsRoutes(app *fiber.App) {
	api := app.Group("/cards")

	// Public verification, linked from the printed card.
	api.Get("/verify", VerifyCardAPI)

	// Guard scan flow.
	api.Post("/scan",
		auth.AuthMiddleware,
		auth.RoleMiddleware(models.RoleGuard, models.RoleAdmin),
		ScanCardAPI)

	// Card retrieval for printing.
	api.Get("/student/:studentId",
		auth.AuthMiddleware,
		auth.RoleMiddleware(models.RoleAdmin, models.RoleSecretary, models.RoleAccountant),
		GetCardByStudentAPI)

	app.Get("/scan-logs",
		auth.AuthMiddleware,
		auth.RoleMiddleware(models.RoleAdmin, models.RoleGuard),
		GetScanLogsAPI)

	// Server-rendered payment history, the QR redirect target.
	app.Get("/students/:id/payments/history", PaymentHistoryPage)
}
