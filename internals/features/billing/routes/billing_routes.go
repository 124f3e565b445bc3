// file: internals/features/billing/routes/billing_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/controller"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
)

// BillingRoutes registra semanas, llamadas, pagos y teléfonos bajo el grupo
// autenticado.
func BillingRoutes(api fiber.Router, db *gorm.DB, svc *service.BillingService) {
	weekCtrl := controller.NewWeekController(db, svc)
	callCtrl := controller.NewCallController(db, svc)
	paymentCtrl := controller.NewPaymentController(db, svc)
	phoneCtrl := controller.NewPhoneController(db, svc)

	weeks := api.Group("/weeks")
	weeks.Post("/", weekCtrl.Create)
	weeks.Get("/", weekCtrl.List)
	weeks.Get("/:id", weekCtrl.GetByID)
	weeks.Delete("/:id", weekCtrl.Delete)

	calls := api.Group("/calls")
	calls.Post("/", callCtrl.Create)
	calls.Get("/", callCtrl.List)
	calls.Put("/:id", callCtrl.Update)
	calls.Delete("/:id", callCtrl.Delete)

	payments := api.Group("/payments")
	payments.Post("/", paymentCtrl.Create)
	payments.Get("/", paymentCtrl.List)
	payments.Get("/:id", paymentCtrl.GetByID)
	payments.Put("/:id", paymentCtrl.Update)
	payments.Delete("/:id", paymentCtrl.Delete)

	phones := api.Group("/phones")
	phones.Post("/", phoneCtrl.Create)
	phones.Get("/", phoneCtrl.List)
	phones.Put("/:id", phoneCtrl.Update)
	phones.Patch("/:id/active", phoneCtrl.SetActive)
	phones.Delete("/:id", phoneCtrl.Delete)
}
