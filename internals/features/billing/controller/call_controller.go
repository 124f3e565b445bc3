// file: internals/features/billing/controller/call_controller.go
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

type CallController struct {
	DB      *gorm.DB
	Service *service.BillingService
}

func NewCallController(db *gorm.DB, svc *service.BillingService) *CallController {
	return &CallController{DB: db, Service: svc}
}

/* ======================= CREATE ======================= */
// POST /api/a/calls
// Alta manual: para teléfonos que entraron con la semana ya abierta.
func (h *CallController) Create(c *fiber.Ctx) error {
	var req dto.CreateCallRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	call, err := h.Service.AddCall(c.UserContext(), req.CallPhoneID, req.CallWeekID)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Llamada registrada", dto.FromCallModel(*call))
}

/* ======================== LIST ======================== */
// GET /api/a/calls?week_id=&phone_id=
func (h *CallController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&model.CallModel{})
	if weekID, err := uuid.Parse(c.Query("week_id")); err == nil {
		q = q.Where("call_week_id = ?", weekID)
	}
	if phoneID, err := uuid.Parse(c.Query("phone_id")); err == nil {
		q = q.Where("call_phone_id = ?", phoneID)
	}

	var calls []model.CallModel
	if err := q.Order("call_created_at ASC").Find(&calls).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromCallModels(calls))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/calls/:id
func (h *CallController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.UpdateCallRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}

	call, err := h.Service.UpdateCall(c.UserContext(), id, req.CallFirstCut, req.CallSecondCut, req.CallFinalCut)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonUpdated(c, "Llamada actualizada", dto.FromCallModel(*call))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/calls/:id
// Si era la última llamada del usuario en la semana, cae también el pago.
// El mensaje distingue "todo limpio" de "queda un comprobante por limpiar".
func (h *CallController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res, err := h.Service.DeleteCall(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}

	msg := "Llamada eliminada"
	if res.PaymentDeleted {
		msg = "Llamada y pago de la semana eliminados"
	}
	if res.CaptureCleanupFailed {
		msg += ". Sus datos quedaron guardados, pero un comprobante pudo quedar en el almacén de imágenes y requiere limpieza manual"
	}
	return helper.JsonDeleted(c, msg, fiber.Map{
		"call_id":         id,
		"payment_deleted": res.PaymentDeleted,
		"capture_orphan":  res.OrphanedCaptureID,
	})
}
