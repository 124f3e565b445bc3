// file: internals/features/users/controller/user_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/constants"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	dto "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/dto"
	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/model"
	helper "github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers"
)

type UserController struct {
	DB      *gorm.DB
	Billing *service.BillingService
}

func NewUserController(db *gorm.DB, billing *service.BillingService) *UserController {
	return &UserController{DB: db, Billing: billing}
}

/* ======================= CREATE ======================= */
// POST /api/a/users (solo admin)
func (h *UserController) Create(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("gestión de usuarios"))
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
	}

	user := req.ToModel()
	user.Password = string(hashed)
	if err := h.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "El email ya está registrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Usuario creado", dto.FromModel(*user))
}

/* ======================== LIST ======================== */
// GET /api/a/users
func (h *UserController) List(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := h.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(users))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/users/:id
// Cambiar user_name dispara el renombrado de todos los comprobantes vivos del
// usuario (el nombre del objeto incluye al usuario). Si algún rename falla,
// ese pago queda sin referencia de comprobante en vez de apuntar a un nombre
// viejo.
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user model.UserModel
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	renamed := req.UserName != nil && *req.UserName != user.UserName

	updates := map[string]any{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return helper.JsonError(c, fiber.StatusConflict, "El email ya está registrado")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	msg := "Usuario actualizado"
	if renamed {
		res, rerr := h.Billing.RenameUserCaptures(c.UserContext(), user.ID, *req.UserName)
		if rerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, rerr.Error())
		}
		if len(res.Degraded) > 0 {
			msg += ". Algunos comprobantes no se pudieron renombrar y quedaron desvinculados; vuelva a subirlos"
		}
	}

	return helper.JsonUpdated(c, msg, dto.FromModel(user))
}
