// file: internals/features/billing/controller/payment_controller.go
package controller

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/dto"
	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	helper "github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers"
)

const maxCaptureSize = 5 * 1024 * 1024 // 5MB

type PaymentController struct {
	DB      *gorm.DB
	Service *service.BillingService
}

func NewPaymentController(db *gorm.DB, svc *service.BillingService) *PaymentController {
	return &PaymentController{DB: db, Service: svc}
}

/* ======================= CREATE ======================= */
// POST /api/a/payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	payment, err := h.Service.AddPayment(c.UserContext(), req.PaymentUserID, req.PaymentWeekID, req.PaymentAmount, req.PaymentBank)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Pago registrado", dto.FromPaymentModel(*payment))
}

/* ======================== LIST ======================== */
// GET /api/a/payments?week_id=&user_id=&status=
func (h *PaymentController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&model.PaymentModel{})
	if weekID, err := uuid.Parse(c.Query("week_id")); err == nil {
		q = q.Where("payment_week_id = ?", weekID)
	}
	if userID, err := uuid.Parse(c.Query("user_id")); err == nil {
		q = q.Where("payment_user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at DESC").Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModels(payments))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var payment model.PaymentModel
	if err := h.DB.First(&payment, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pago no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModel(payment))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/payments/:id
// Acepta JSON o multipart/form-data. Con multipart, la imagen nueva viaja en
// el campo "capture" (o "image"/"file"); delete_capture=true sin imagen
// limpia el comprobante.
func (h *PaymentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in := service.UpdatePaymentInput{
		Amount:      req.PaymentAmount,
		Status:      req.PaymentStatus,
		Bank:        req.PaymentBank,
		DeleteImage: req.DeleteCapture,
	}

	if req.PaymentPaidDate != nil && *req.PaymentPaidDate != "" {
		t, err := time.Parse("2006-01-02", *req.PaymentPaidDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Fecha de pago inválida (use AAAA-MM-DD)")
		}
		d := datatypes.Date(t)
		in.PaidDate = &d
	}

	if fh := captureFile(c); fh != nil {
		if fh.Size > maxCaptureSize {
			return helper.JsonError(c, fiber.StatusBadRequest, "La imagen supera el máximo de 5MB")
		}
		src, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "No se pudo leer la imagen")
		}
		defer src.Close()
		in.NewImage = src
		in.NewImageName = fh.Filename
		in.DeleteImage = false // excluyentes: imagen nueva manda
	}

	payment, err := h.Service.UpdatePayment(c.UserContext(), id, in)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonUpdated(c, "Pago actualizado", dto.FromPaymentModel(*payment))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/payments/:id
func (h *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	orphaned, err := h.Service.DeletePayment(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}

	msg := "Pago eliminado"
	if orphaned {
		msg += ". Sus datos quedaron guardados, pero el comprobante pudo quedar en el almacén de imágenes y requiere limpieza manual"
	}
	return helper.JsonDeleted(c, msg, fiber.Map{"payment_id": id, "capture_orphan": orphaned})
}

// captureFile busca la imagen en los nombres de campo habituales.
func captureFile(c *fiber.Ctx) *multipart.FileHeader {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return nil
	}
	for _, field := range []string{"capture", "image", "file"} {
		if fh, err := c.FormFile(field); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}
