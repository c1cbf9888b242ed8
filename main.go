package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/VictorRop4/alx-project-nexus/config"
	"github.com/VictorRop4/alx-project-nexus/handlers"
	"github.com/VictorRop4/alx-project-nexus/internal/mpesa"
	"github.com/VictorRop4/alx-project-nexus/middleware"
)

func main() {
	cfg := config.LoadConfig()

	db, cleanup, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer cleanup()

	if len(os.Args) > 1 && os.Args[1] == "reset" {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Reset failed:", err)
		}
		return
	}

	if err := config.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Store Backend",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	mpesaClient := mpesa.NewClient(mpesa.Config{
		BaseURL:        cfg.MpesaBaseURL,
		ConsumerKey:    cfg.MpesaConsumerKey,
		ConsumerSecret: cfg.MpesaConsumerSecret,
		Shortcode:      cfg.MpesaShortcode,
		Passkey:        cfg.MpesaPasskey,
		CallbackURL:    cfg.MpesaCallbackURL + "/api/mpesa/callback/",
	})

	handlers.SetupRoutes(app, db, mpesaClient)

	middleware.SetupErrorHandler(app)

	log.Printf("Server starting on %s:%s", cfg.Host, cfg.AppPort)
	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
