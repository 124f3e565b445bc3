// file: internals/features/billing/service/calls.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
)

// AddCall registra la primera llamada de un teléfono en la semana. Un teléfono
// dado de alta con la semana ya abierta entra por acá, no por el fan-out.
func (s *BillingService) AddCall(ctx context.Context, phoneID, weekID uuid.UUID) (*model.CallModel, error) {
	db := s.DB.WithContext(ctx)

	var phone model.PhoneModel
	if err := db.First(&phone, "phone_id = ?", phoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("phone %s: %w", phoneID, ErrNotFound)
		}
		return nil, err
	}
	var week model.WeekModel
	if err := db.First(&week, "week_id = ?", weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("week %s: %w", weekID, ErrNotFound)
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&model.CallModel{}).
		Where("call_phone_id = ? AND call_week_id = ?", phoneID, weekID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateCall
	}

	call := &model.CallModel{CallPhoneID: phoneID, CallWeekID: weekID}
	if err := db.Create(call).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCall
		}
		return nil, err
	}
	return call, nil
}

// UpdateCall persiste los tres cortes y recalcula el total (redondeo a dos
// decimales). No toca el pago: el agregado del pago lo mantiene otro proceso.
func (s *BillingService) UpdateCall(ctx context.Context, callID uuid.UUID, firstCut, secondCut, finalCut *float64) (*model.CallModel, error) {
	if firstCut == nil || secondCut == nil || finalCut == nil {
		return nil, ErrMissingField
	}

	db := s.DB.WithContext(ctx)
	var call model.CallModel
	if err := db.First(&call, "call_id = ?", callID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("call %s: %w", callID, ErrNotFound)
		}
		return nil, err
	}

	call.CallFirstCut = round2(*firstCut)
	call.CallSecondCut = round2(*secondCut)
	call.CallFinalCut = round2(*finalCut)
	call.CallTotal = round2(call.CallFirstCut + call.CallSecondCut + call.CallFinalCut)

	if err := db.Model(&call).Updates(map[string]any{
		"call_first_cut":  call.CallFirstCut,
		"call_second_cut": call.CallSecondCut,
		"call_final_cut":  call.CallFinalCut,
		"call_total":      call.CallTotal,
	}).Error; err != nil {
		return nil, err
	}
	return &call, nil
}

// DeleteCallResult le dice al caller qué pasó además del borrado:
// si cayó el pago del par (usuario, semana) y si quedó un comprobante
// huérfano en el bucket que requiere limpieza manual.
type DeleteCallResult struct {
	PaymentDeleted        bool
	CaptureCleanupFailed  bool
	OrphanedCaptureID     string
}

// DeleteCall borra la llamada y, si era la última del par (usuario, semana),
// baja también el pago. El borrado de llamada + conteo + borrado de pago es
// una sola transacción con lock sobre el pago: dos DeleteCall concurrentes
// sobre llamadas del mismo usuario/semana no pueden contarse mal entre sí.
//
// El comprobante se intenta borrar del almacén ANTES de borrar el pago, pero
// una falla ahí no bloquea: un objeto huérfano en el bucket es un problema
// menor frente a un pago huérfano en el ledger.
func (s *BillingService) DeleteCall(ctx context.Context, callID uuid.UUID) (*DeleteCallResult, error) {
	res := &DeleteCallResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var call model.CallModel
		if err := tx.First(&call, "call_id = ?", callID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("call %s: %w", callID, ErrNotFound)
			}
			return err
		}

		var phone model.PhoneModel
		if err := tx.First(&phone, "phone_id = ?", call.CallPhoneID).Error; err != nil {
			return err
		}
		userID := phone.PhoneUserID
		weekID := call.CallWeekID

		if err := tx.Delete(&call).Error; err != nil {
			return err
		}

		// Lock del pago antes de contar: serializa el check-then-act.
		var payment model.PaymentModel
		payErr := lockForUpdate(tx).
			Where("payment_user_id = ? AND payment_week_id = ?", userID, weekID).
			First(&payment).Error
		if payErr != nil && !errors.Is(payErr, gorm.ErrRecordNotFound) {
			return payErr
		}

		var remaining int64
		if err := tx.Model(&model.CallModel{}).
			Joins("JOIN phones ON phones.phone_id = calls.call_phone_id").
			Where("phones.phone_user_id = ? AND calls.call_week_id = ?", userID, weekID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil // quedan llamadas: el pago sobrevive intacto
		}

		if errors.Is(payErr, gorm.ErrRecordNotFound) {
			return nil // última llamada pero nunca hubo pago
		}

		if payment.HasCapture() {
			if err := s.Captures.Delete(ctx, *payment.PaymentCaptureID); err != nil {
				res.CaptureCleanupFailed = true
				res.OrphanedCaptureID = *payment.PaymentCaptureID
			}
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		res.PaymentDeleted = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
