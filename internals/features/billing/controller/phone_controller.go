// file: internals/features/billing/controller/phone_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/dto"
	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	helper "github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers"
)

type PhoneController struct {
	DB      *gorm.DB
	Service *service.BillingService
}

func NewPhoneController(db *gorm.DB, svc *service.BillingService) *PhoneController {
	return &PhoneController{DB: db, Service: svc}
}

/* ======================= CREATE ======================= */
// POST /api/a/phones
// Si ya hay una semana abierta, la primera llamada se agrega aparte con
// POST /calls; el alta de teléfono no provisiona retroactivamente.
func (h *PhoneController) Create(c *fiber.Ctx) error {
	var req dto.CreatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	phone, err := h.Service.AddPhone(c.UserContext(), req.PhoneUserID, req.PhoneNumber)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Teléfono registrado", dto.FromPhoneModel(*phone))
}

/* ======================== LIST ======================== */
// GET /api/a/phones?user_id=&active=
func (h *PhoneController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&model.PhoneModel{})
	if userID, err := uuid.Parse(c.Query("user_id")); err == nil {
		q = q.Where("phone_user_id = ?", userID)
	}
	if active := c.Query("active"); active == "true" || active == "false" {
		q = q.Where("phone_active = ?", active == "true")
	}

	var phones []model.PhoneModel
	if err := q.Order("phone_created_at ASC").Find(&phones).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromPhoneModels(phones))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/phones/:id
func (h *PhoneController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.UpdatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	phone, err := h.Service.UpdatePhone(c.UserContext(), id, req.PhoneNumber, req.PhoneUserID)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonUpdated(c, "Teléfono actualizado", dto.FromPhoneModel(*phone))
}

/* ======================= ACTIVATE / DEACTIVATE ======================= */
// PATCH /api/a/phones/:id/active
// Baja blanda: saca al teléfono del fan-out sin perder historial.
func (h *PhoneController) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.SetPhoneActiveRequest
	if err := c.BodyParser(&req); err != nil || req.PhoneActive == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido: falta phone_active")
	}

	phone, err := h.Service.SetPhoneActive(c.UserContext(), id, *req.PhoneActive)
	if err != nil {
		return serviceError(c, err)
	}

	msg := "Teléfono desactivado"
	if *req.PhoneActive {
		msg = "Teléfono activado"
	}
	return helper.JsonUpdated(c, msg, dto.FromPhoneModel(*phone))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/phones/:id
// Baja dura: solo con cero llamadas (las llamadas se limpian antes, a mano).
func (h *PhoneController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	if err := h.Service.DeletePhone(c.UserContext(), id); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonDeleted(c, "Teléfono eliminado", fiber.Map{"phone_id": id})
}
