package main

import (
	"strings"

	"kikiks-backend/internal/admin"
	"kikiks-backend/internal/audit"
	"kikiks-backend/internal/auth"
	"kikiks-backend/internal/catalog"
	"kikiks-backend/internal/config"
	"kikiks-backend/internal/database"
	"kikiks-backend/internal/inventory"
	"kikiks-backend/internal/models"
	"kikiks-backend/internal/notify"
	"kikiks-backend/internal/orders"
	"kikiks-backend/internal/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	cat := catalog.Default()
	notifier := notify.New(cfg.WebhookURL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logrus.WithError(err).Error("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Branch management
	adminRoutes.Post("/branches", admin.CreateBranchHandler())
	adminRoutes.Get("/branches", admin.ListBranchesHandler())
	adminRoutes.Get("/branches/:id", admin.GetBranchHandler())
	adminRoutes.Put("/branches/:id", admin.UpdateBranchHandler())
	adminRoutes.Delete("/branches/:id", admin.DeleteBranchHandler())
	adminRoutes.Post("/branches/:id/staff", admin.CreateBranchStaffHandler())
	adminRoutes.Get("/branches/:id/staff", admin.ListBranchStaffHandler())

	// Product management
	adminRoutes.Post("/products", inventory.CreateProductHandler())
	adminRoutes.Put("/products/:id", inventory.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler())
	adminRoutes.Post("/products/generate", inventory.GenerateProductsHandler(cat))

	// Import audit trail
	adminRoutes.Get("/import-logs", admin.ListImportLogsHandler())

	// Product catalog
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/catalog/codes", inventory.ListCatalogCodesHandler(cat))

	// Stock levels
	protected.Get("/stock-levels", inventory.ListStockLevelsHandler())
	protected.Put("/stock-levels", inventory.UpsertStockLevelHandler())
	protected.Get("/stock-levels/export", inventory.ExportStockLevelsHandler())
	protected.Get("/stock-history", inventory.ListStockHistoryHandler())

	// Utak CSV reconciliation
	protected.Post("/utak/preview", inventory.UtakPreviewHandler(cat, cfg))
	protected.Post("/utak/commit", inventory.UtakCommitHandler(cfg, notifier))

	// Stock transfers between locations
	protected.Post("/stock-transfers", transfer.CreateTransferHandler())
	protected.Get("/stock-transfers", transfer.ListTransfersHandler())
	protected.Get("/stock-transfers/:id", transfer.GetTransferHandler())
	protected.Post("/stock-transfers/:id/complete", transfer.CompleteTransferHandler())

	// Reseller orders
	protected.Post("/reseller-orders", orders.CreateResellerOrderHandler())
	protected.Get("/reseller-orders", orders.ListResellerOrdersHandler())
	protected.Get("/reseller-orders/:id", orders.GetResellerOrderHandler())
	protected.Put("/reseller-orders/:id/status", orders.UpdateResellerOrderStatusHandler())

	// Seasonal / promo orders
	protected.Post("/seasonal-orders", orders.CreateSeasonalOrderHandler())
	protected.Get("/seasonal-orders", orders.ListSeasonalOrdersHandler())
	protected.Get("/seasonal-orders/:id", orders.GetSeasonalOrderHandler())
	protected.Put("/seasonal-orders/:id/status", orders.UpdateSeasonalOrderStatusHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	logrus.WithField("port", cfg.HTTPPort).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.Fatal(err)
	}
}
