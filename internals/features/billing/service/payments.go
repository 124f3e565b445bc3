// file: internals/features/billing/service/payments.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	userModel "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/model"
)

// AddPayment crea el pago del par (usuario, semana). Único por par.
func (s *BillingService) AddPayment(ctx context.Context, userID, weekID uuid.UUID, amount float64, bank string) (*model.PaymentModel, error) {
	db := s.DB.WithContext(ctx)

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
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
	if err := db.Model(&model.PaymentModel{}).
		Where("payment_user_id = ? AND payment_week_id = ?", userID, weekID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicatePayment
	}

	payment := &model.PaymentModel{
		PaymentUserID: userID,
		PaymentWeekID: weekID,
		PaymentAmount: round2(amount),
		PaymentStatus: model.PaymentStatusPending,
		PaymentBank:   bank,
	}
	if err := db.Create(payment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePayment
		}
		return nil, err
	}
	return payment, nil
}

// UpdatePaymentInput: campos escalares del pago. Los punteros nil no tocan la
// columna (update parcial, estilo PUT de la casa).
type UpdatePaymentInput struct {
	Amount   *float64
	Status   *string
	Bank     *string
	PaidDate *datatypes.Date

	// NewImage y DeleteImage son excluyentes por llamada.
	NewImage     io.Reader
	NewImageName string
	DeleteImage  bool
}

// UpdatePayment aplica los escalares y resuelve el ciclo de vida del
// comprobante:
//
//   - imagen nueva  → borrar la vieja del bucket, subir la nueva con nombre
//     determinístico y recién ahí persistir. Si CUALQUIER paso remoto falla,
//     la fila no se toca y el error es reintetable: nunca queda una
//     referencia a medias (capture_id sin capture_url o viceversa).
//   - DeleteImage   → borrar del bucket y limpiar ambas columnas.
//   - ninguno       → el comprobante no se toca.
func (s *BillingService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, in UpdatePaymentInput) (*model.PaymentModel, error) {
	db := s.DB.WithContext(ctx)

	var payment model.PaymentModel
	if err := db.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]any{}
	if in.Amount != nil {
		updates["payment_amount"] = round2(*in.Amount)
	}
	if in.Status != nil {
		switch *in.Status {
		case model.PaymentStatusPending, model.PaymentStatusPaid, model.PaymentStatusCancelled:
			updates["payment_status"] = *in.Status
		default:
			return nil, fmt.Errorf("status %q: %w", *in.Status, ErrMissingField)
		}
	}
	if in.Bank != nil {
		updates["payment_bank"] = *in.Bank
	}
	if in.PaidDate != nil {
		updates["payment_paid_date"] = *in.PaidDate
	}

	switch {
	case in.NewImage != nil:
		var user userModel.UserModel
		if err := db.First(&user, "id = ?", payment.PaymentUserID).Error; err != nil {
			return nil, err
		}
		var week model.WeekModel
		if err := db.First(&week, "week_id = ?", payment.PaymentWeekID).Error; err != nil {
			return nil, err
		}
		name := CaptureName(&week, user.UserName)

		// primero afuera lo viejo: dos objetos con nombres pisados es peor
		// que reintentar el upload
		if payment.HasCapture() {
			if err := s.Captures.Delete(ctx, *payment.PaymentCaptureID); err != nil {
				return nil, err
			}
		}
		up, err := s.Captures.Upload(ctx, in.NewImage, name, CaptureFolder)
		if err != nil {
			return nil, err
		}
		updates["payment_capture_id"] = up.ID
		updates["payment_capture_url"] = up.URL

	case in.DeleteImage:
		if payment.HasCapture() {
			if err := s.Captures.Delete(ctx, *payment.PaymentCaptureID); err != nil {
				return nil, err
			}
		}
		updates["payment_capture_id"] = nil
		updates["payment_capture_url"] = nil
	}

	if len(updates) > 0 {
		if err := db.Model(&payment).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := db.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// DeletePayment borra el pago suelto (sin tocar llamadas). El comprobante se
// limpia del bucket primero; si esa limpieza falla se reporta pero el pago
// cae igual: prioridad al ledger.
func (s *BillingService) DeletePayment(ctx context.Context, paymentID uuid.UUID) (orphanedCapture bool, err error) {
	db := s.DB.WithContext(ctx)

	var payment model.PaymentModel
	if err := db.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
		}
		return false, err
	}

	if payment.HasCapture() {
		if derr := s.Captures.Delete(ctx, *payment.PaymentCaptureID); derr != nil {
			orphanedCapture = true
		}
	}
	return orphanedCapture, db.Delete(&payment).Error
}
