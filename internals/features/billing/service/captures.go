// file: internals/features/billing/service/captures.go
package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
)

// RenameResult resume la pasada de renombrado de comprobantes.
type RenameResult struct {
	Renamed  int
	Degraded []uuid.UUID // pagos cuyo comprobante quedó en vacío por falla de rename
}

// RenameUserCaptures corre cuando cambia el user_name: cada comprobante vivo
// del usuario se renombra al nombre determinístico nuevo. Es best-effort con
// política "fail safe to empty": si un rename falla, ese pago queda SIN
// referencia de comprobante en vez de apuntar a un nombre viejo — preferimos
// perder el link antes que mentir sobre lo que hay en el bucket.
func (s *BillingService) RenameUserCaptures(ctx context.Context, userID uuid.UUID, newUserName string) (*RenameResult, error) {
	db := s.DB.WithContext(ctx)
	res := &RenameResult{}

	var payments []model.PaymentModel
	if err := db.
		Where("payment_user_id = ? AND payment_capture_id IS NOT NULL", userID).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	for i := range payments {
		p := &payments[i]
		if !p.HasCapture() {
			continue
		}

		var week model.WeekModel
		if err := db.First(&week, "week_id = ?", p.PaymentWeekID).Error; err != nil {
			return res, err
		}
		newName := CaptureName(&week, newUserName)

		up, err := s.Captures.Rename(ctx, *p.PaymentCaptureID, newName)
		if err != nil {
			log.Printf("[WARN] rename de comprobante %s falló, se degrada a vacío: %v", *p.PaymentCaptureID, err)
			if uerr := db.Model(p).Updates(map[string]any{
				"payment_capture_id":  nil,
				"payment_capture_url": nil,
			}).Error; uerr != nil {
				return res, uerr
			}
			res.Degraded = append(res.Degraded, p.PaymentID)
			continue
		}

		if err := db.Model(p).Updates(map[string]any{
			"payment_capture_id":  up.ID,
			"payment_capture_url": up.URL,
		}).Error; err != nil {
			return res, err
		}
		res.Renamed++
	}
	return res, nil
}
