// file: internals/features/billing/controller/week_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/dto"
	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	helper "github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers"
)

type WeekController struct {
	DB      *gorm.DB
	Service *service.BillingService
}

func NewWeekController(db *gorm.DB, svc *service.BillingService) *WeekController {
	return &WeekController{DB: db, Service: svc}
}

/* ======================= CREATE ======================= */
// POST /api/a/weeks
// Crea la semana y provisiona una llamada en cero por teléfono activo.
func (h *WeekController) Create(c *fiber.Ctx) error {
	var req dto.CreateWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	week, err := h.Service.CreateWeek(c.UserContext(), req.WeekYear, req.WeekMonth, req.WeekLabel)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Semana creada y llamadas provisionadas", dto.FromWeekModel(*week))
}

/* ======================== LIST ======================== */
// GET /api/a/weeks?year=&month=
func (h *WeekController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&model.WeekModel{})
	if year := c.QueryInt("year"); year > 0 {
		q = q.Where("week_year = ?", year)
	}
	if month := c.Query("month"); month != "" {
		q = q.Where("week_month = ?", month)
	}

	var weeks []model.WeekModel
	if err := q.Order("week_year DESC, week_created_at DESC").Find(&weeks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.WeekResponse, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, dto.FromWeekModel(w))
	}
	return helper.JsonOK(c, "OK", out)
}

/* ======================= GET BY ID ======================= */
// GET /api/a/weeks/:id
func (h *WeekController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var week model.WeekModel
	if err := h.DB.First(&week, "week_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Semana no encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromWeekModel(week))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/weeks/:id
// Limpia los comprobantes del bucket primero; si alguno falla no se borra
// NADA (ni semana, ni llamadas, ni pagos).
func (h *WeekController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	if err := h.Service.DeleteWeek(c.UserContext(), id); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonDeleted(c, "Semana eliminada con sus llamadas y pagos", fiber.Map{"week_id": id})
}
