// file: internals/features/billing/controller/http_error.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/service"
	helper "github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers/capture"
)

// serviceError traduce los errores del motor a respuestas HTTP. Para fallas
// del almacén remoto el mensaje deja claro que NADA se guardó y se puede
// reintentar; el caso contrario ("guardado pero con limpieza pendiente") lo
// arma cada handler porque depende de la operación.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicatePeriod):
		return helper.JsonError(c, fiber.StatusConflict, "La semana ya existe para ese año, mes y rango")
	case errors.Is(err, service.ErrDuplicateCall):
		return helper.JsonError(c, fiber.StatusConflict, "El teléfono ya tiene una llamada registrada en esa semana")
	case errors.Is(err, service.ErrDuplicateNumber):
		return helper.JsonError(c, fiber.StatusConflict, "El número de teléfono ya está registrado")
	case errors.Is(err, service.ErrDuplicatePayment):
		return helper.JsonError(c, fiber.StatusConflict, "El usuario ya tiene un pago en esa semana")
	case errors.Is(err, service.ErrMissingField):
		return helper.JsonError(c, fiber.StatusBadRequest, "Faltan campos obligatorios")
	case errors.Is(err, service.ErrHasCalls):
		return helper.JsonError(c, fiber.StatusConflict, "El teléfono tiene llamadas asociadas; elimínelas primero")
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Registro no encontrado")
	case errors.Is(err, capture.ErrServiceUnstable):
		return helper.JsonError(c, fiber.StatusServiceUnavailable,
			"El servicio de imágenes está inestable. No se guardó ningún cambio; intente de nuevo en unos minutos")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
