package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"scolapay/app/config"
	"scolapay/app/database"
	"scolapay/app/routes/auth"
	"scolapay/app/routes/cards"
	"scolapay/app/routes/dashboard"
	"scolapay/app/routes/institutions"
	"scolapay/app/routes/payments"
	"scolapay/app/routes/programs"
	"scolapay/app/routes/students"
	"scolapay/app/services"
)

// customErrorHandler maps errors to the JSON envelope, or renders the error
// page for browser requests (the payment-history page is server-rendered).
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if c.Accepts("json", "html") == "html" {
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Erreur",
			"ErrorCode":    code,
			"ErrorMessage": err.Error(),
		})
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"code":    code,
	})
}

func main() {
	cfg := config.Load()
	cfg.InitDB()
	defer cfg.DB.Close()

	if err := database.RunMigrations(cfg.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	auth.Init(cfg.JWTSecret)

	// Nightly sweep marking overdue VALID payments as EXPIRED.
	services.StartScheduler(cfg.DB)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app)
	cards.SetupCardsRoutes(app) // before students: owns the public history page
	students.SetupStudentsRoutes(app)
	institutions.SetupInstitutionsRoutes(app)
	programs.SetupProgramsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	dashboard.SetupDashboardRoutes(app)

	log.Printf("Server listening on port %s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}
