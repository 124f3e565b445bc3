// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoutes "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/routes"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	userRoutes "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/routes"
	middlewares "github.com/jesusbritomolina/EscombrosApp-sub000/internals/middlewares"
	authMiddleware "github.com/jesusbritomolina/EscombrosApp-sub000/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, svc *service.BillingService) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up public routes...")
	public := app.Group("/api", middlewares.LoginRateLimiter())
	userRoutes.AuthRoutes(public, db)

	// ===================== PRIVATE (staff) =====================
	log.Println("[INFO] Setting up private routes...")
	private := app.Group("/api/a", authMiddleware.AuthMiddleware())
	userRoutes.UserRoutes(private, db, svc)
	billingRoutes.BillingRoutes(private, db, svc)
}
