// file: internals/features/billing/service/errors.go
package service

import (
	"errors"

	"gorm.io/gorm"
)

// Errores del motor. Los controllers los mapean a status HTTP con errors.Is;
// los mensajes al usuario viven en el controller, no acá.
var (
	// corregibles por el caller, se detectan antes de mutar nada
	ErrDuplicatePeriod  = errors.New("week period already exists")
	ErrDuplicateCall    = errors.New("call already exists for phone and week")
	ErrDuplicateNumber  = errors.New("phone number already exists")
	ErrDuplicatePayment = errors.New("payment already exists for user and week")
	ErrMissingField     = errors.New("missing required field")

	// conflicto de invariante: falta completar un paso previo
	ErrHasCalls = errors.New("phone still has calls")

	// id inexistente (semana/llamada/pago/teléfono/usuario)
	ErrNotFound = errors.New("record not found")
)

// isUniqueViolation: los índices únicos son la última línea contra carreras
// entre el pre-chequeo y el INSERT. Requiere TranslateError en gorm.Config.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
