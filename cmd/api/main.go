package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	"github.com/freightdesk/freightdesk-be/internal/core/export"
	"github.com/freightdesk/freightdesk-be/internal/core/sched"
	"github.com/freightdesk/freightdesk-be/internal/core/stats"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/handlers"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/repositories"
	"github.com/freightdesk/freightdesk-be/internal/modules/freight/services"
	"github.com/freightdesk/freightdesk-be/internal/shared/config"
	"github.com/freightdesk/freightdesk-be/internal/shared/database"
	"github.com/freightdesk/freightdesk-be/internal/shared/utils"

	_ "github.com/freightdesk/freightdesk-be/cmd/api/docs"
)

// @title FreightDesk API
// @version 1.0
// @description API documentation for the FreightDesk package forwarding backend
// @contact.name API Support
// @contact.email support@freightdesk.io
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting freightdesk-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	customerRepo := repositories.NewCustomerRepo(db.GORM)
	packageRepo := repositories.NewPackageRepo(db.GORM)
	paymentRepo := repositories.NewPaymentRepo(db.GORM)
	manifestRepo := repositories.NewManifestRepo(db.GORM)
	statsSource := repositories.NewStatsSource(db.GORM)

	// Init services
	exportService := export.NewService()
	customerService := services.NewCustomerService(customerRepo, packageRepo, paymentRepo)
	packageService := services.NewPackageService(packageRepo, customerRepo)
	billingService := services.NewBillingService(paymentRepo, customerRepo, packageRepo, exportService)
	manifestService := services.NewManifestService(manifestRepo, packageRepo, exportService)
	dashboardService := services.NewDashboardService(statsSource, stats.Options{
		TopCustomersLimit:   cfg.TopCustomersLimit,
		RecentActivityLimit: cfg.RecentActivityLimit,
	})

	// Init handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	packageHandler := handlers.NewPackageHandler(packageService, packageRepo)
	paymentHandler := handlers.NewPaymentHandler(billingService)
	manifestHandler := handlers.NewManifestHandler(manifestService, manifestRepo, packageRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(db)

	// Scheduler: morning alert digest for operations staff
	scheduler := sched.NewScheduler()
	if err := scheduler.AddJob("alert-digest", cfg.AlertDigestSchedule, dashboardService.LogAlertDigest); err != nil {
		log.Fatalf("Failed to schedule alert digest: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "FreightDesk API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.Health)

	// Dashboard routes
	app.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Customer routes
	app.Post("/customers", customerHandler.CreateCustomer)
	app.Get("/customers", customerHandler.ListCustomers)
	app.Get("/customers/:id", customerHandler.GetCustomer)
	app.Get("/customers/:id/packages", customerHandler.GetCustomerPackages)
	app.Get("/customers/:id/payments", customerHandler.GetCustomerPayments)

	// Package routes
	app.Post("/packages", packageHandler.RegisterPackage)
	app.Get("/packages", packageHandler.ListPackages)
	app.Get("/packages/track/:trackingNumber", packageHandler.TrackPackage)
	app.Get("/packages/:id", packageHandler.GetPackage)
	app.Patch("/packages/:id/status", packageHandler.UpdatePackageStatus)
	app.Get("/packages/:id/label", packageHandler.GetPackageLabel)

	// Payment routes
	app.Post("/payments", paymentHandler.CreateInvoice)
	app.Get("/payments/outstanding", paymentHandler.ListOutstanding)
	app.Post("/payments/:id/confirm", paymentHandler.ConfirmPayment)
	app.Post("/payments/:id/cancel", paymentHandler.CancelPayment)
	app.Get("/payments/:id/invoice", paymentHandler.GetInvoicePDF)

	// Manifest routes
	app.Post("/manifests", manifestHandler.CreateManifest)
	app.Get("/manifests", manifestHandler.ListManifests)
	app.Get("/manifests/:id", manifestHandler.GetManifest)
	app.Post("/manifests/:id/packages", manifestHandler.AddPackages)
	app.Post("/manifests/:id/close", manifestHandler.CloseManifest)
	app.Post("/manifests/:id/depart", manifestHandler.DepartManifest)
	app.Get("/manifests/:id/export", manifestHandler.ExportManifest)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ freightdesk-api running at :%s", port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", port)
	log.Fatal(app.Listen(":" + port))
}
