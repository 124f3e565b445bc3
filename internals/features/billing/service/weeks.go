// file: internals/features/billing/service/weeks.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
)

// CreateWeek abre un período (año, mes, etiqueta) y provisiona una llamada en
// cero por cada teléfono activo, todo dentro de la misma transacción: para el
// caller la semana nace ya poblada, o no nace.
func (s *BillingService) CreateWeek(ctx context.Context, year int16, month, label string) (*model.WeekModel, error) {
	if month == "" || label == "" || year == 0 {
		return nil, ErrMissingField
	}

	week := &model.WeekModel{WeekYear: year, WeekMonth: month, WeekLabel: label}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.WeekModel
		err := tx.Where("week_year = ? AND week_month = ? AND week_label = ?", year, month, label).
			First(&existing).Error
		if err == nil {
			return ErrDuplicatePeriod
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(week).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicatePeriod
			}
			return err
		}

		return provisionCallsForWeek(tx, week.WeekID)
	})
	if err != nil {
		return nil, err
	}
	return week, nil
}

// provisionCallsForWeek: el viejo trigger de fan-out, como paso explícito del
// servicio. Una llamada en cero por teléfono activo; los teléfonos que se
// activen después no reciben llamada retroactiva (eso es AddCall).
func provisionCallsForWeek(tx *gorm.DB, weekID uuid.UUID) error {
	var phones []model.PhoneModel
	if err := tx.Where("phone_active = ?", true).Find(&phones).Error; err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}

	calls := make([]model.CallModel, 0, len(phones))
	for _, p := range phones {
		calls = append(calls, model.CallModel{
			CallPhoneID: p.PhoneID,
			CallWeekID:  weekID,
		})
	}
	return tx.Create(&calls).Error
}

// DeleteWeek borra el período completo. Primero se limpian TODOS los
// comprobantes del almacén remoto; si alguno falla, la operación aborta sin
// tocar una sola fila (no dejamos semanas a medio borrar apuntando a estado
// ambiguo). Recién con el bucket limpio se borra la semana, y la cascada FK
// arrastra llamadas y pagos.
func (s *BillingService) DeleteWeek(ctx context.Context, weekID uuid.UUID) error {
	var week model.WeekModel
	if err := s.DB.WithContext(ctx).First(&week, "week_id = ?", weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("week %s: %w", weekID, ErrNotFound)
		}
		return err
	}

	var payments []model.PaymentModel
	if err := s.DB.WithContext(ctx).
		Where("payment_week_id = ? AND payment_capture_id IS NOT NULL", weekID).
		Find(&payments).Error; err != nil {
		return err
	}

	for _, p := range payments {
		if !p.HasCapture() {
			continue
		}
		if err := s.Captures.Delete(ctx, *p.PaymentCaptureID); err != nil {
			return fmt.Errorf("capture %s: %w", *p.PaymentCaptureID, err)
		}
	}

	return s.DB.WithContext(ctx).Delete(&week).Error
}
