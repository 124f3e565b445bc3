// file: internals/features/users/routes/user_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/controller"
)

// AuthRoutes: endpoints públicos (login).
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)
	app.Post("/login", authCtrl.Login)
}

// UserRoutes: gestión de usuarios, dentro del grupo autenticado.
func UserRoutes(api fiber.Router, db *gorm.DB, billing *service.BillingService) {
	userCtrl := controller.NewUserController(db, billing)

	users := api.Group("/users")
	users.Post("/", userCtrl.Create)
	users.Get("/", userCtrl.List)
	users.Put("/:id", userCtrl.Update)
}
