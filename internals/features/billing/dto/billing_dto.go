// file: internals/features/billing/dto/billing_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
)

/* =============== REQUESTS =============== */

type CreateWeekRequest struct {
	WeekYear  int16  `json:"week_year"  validate:"required,gte=2000,lte=2100"`
	WeekMonth string `json:"week_month" validate:"required,min=3,max=20"`
	WeekLabel string `json:"week_label" validate:"required,min=1,max=20"`
}

type CreateCallRequest struct {
	CallPhoneID uuid.UUID `json:"call_phone_id" validate:"required"`
	CallWeekID  uuid.UUID `json:"call_week_id"  validate:"required"`
}

// Los cortes van como punteros: un campo ausente debe rebotar como "falta
// campo", no colarse como cero.
type UpdateCallRequest struct {
	CallFirstCut  *float64 `json:"call_first_cut"`
	CallSecondCut *float64 `json:"call_second_cut"`
	CallFinalCut  *float64 `json:"call_final_cut"`
}

type CreatePaymentRequest struct {
	PaymentUserID uuid.UUID `json:"payment_user_id" validate:"required"`
	PaymentWeekID uuid.UUID `json:"payment_week_id" validate:"required"`
	PaymentAmount float64   `json:"payment_amount"  validate:"gte=0"`
	PaymentBank   string    `json:"payment_bank"    validate:"omitempty,max=50"`
}

// Update parcial. Con multipart los escalares llegan por form y la imagen por
// el campo de archivo; delete_capture sin imagen nueva limpia el comprobante.
type UpdatePaymentRequest struct {
	PaymentAmount   *float64 `json:"payment_amount"    form:"payment_amount"`
	PaymentStatus   *string  `json:"payment_status"    form:"payment_status"   validate:"omitempty,oneof=Pending Paid Cancelled"`
	PaymentBank     *string  `json:"payment_bank"      form:"payment_bank"     validate:"omitempty,max=50"`
	PaymentPaidDate *string  `json:"payment_paid_date" form:"payment_paid_date"` // "2006-01-02"
	DeleteCapture   bool     `json:"delete_capture"    form:"delete_capture"`
}

type CreatePhoneRequest struct {
	PhoneUserID uuid.UUID `json:"phone_user_id" validate:"required"`
	PhoneNumber string    `json:"phone_number"  validate:"required,min=7,max=20"`
}

type UpdatePhoneRequest struct {
	PhoneNumber *string    `json:"phone_number"  validate:"omitempty,min=7,max=20"`
	PhoneUserID *uuid.UUID `json:"phone_user_id"`
}

type SetPhoneActiveRequest struct {
	PhoneActive *bool `json:"phone_active" validate:"required"`
}

/* =============== RESPONSES =============== */

type WeekResponse struct {
	WeekID        uuid.UUID  `json:"week_id"`
	WeekYear      int16      `json:"week_year"`
	WeekMonth     string     `json:"week_month"`
	WeekLabel     string     `json:"week_label"`
	WeekCreatedAt time.Time  `json:"week_created_at"`
	WeekUpdatedAt *time.Time `json:"week_updated_at,omitempty"`
}

func FromWeekModel(x m.WeekModel) WeekResponse {
	return WeekResponse{
		WeekID:        x.WeekID,
		WeekYear:      x.WeekYear,
		WeekMonth:     x.WeekMonth,
		WeekLabel:     x.WeekLabel,
		WeekCreatedAt: x.WeekCreatedAt,
		WeekUpdatedAt: x.WeekUpdatedAt,
	}
}

type CallResponse struct {
	CallID        uuid.UUID  `json:"call_id"`
	CallPhoneID   uuid.UUID  `json:"call_phone_id"`
	CallWeekID    uuid.UUID  `json:"call_week_id"`
	CallFirstCut  float64    `json:"call_first_cut"`
	CallSecondCut float64    `json:"call_second_cut"`
	CallFinalCut  float64    `json:"call_final_cut"`
	CallTotal     float64    `json:"call_total"`
	CallCreatedAt time.Time  `json:"call_created_at"`
	CallUpdatedAt *time.Time `json:"call_updated_at,omitempty"`
}

func FromCallModel(x m.CallModel) CallResponse {
	return CallResponse{
		CallID:        x.CallID,
		CallPhoneID:   x.CallPhoneID,
		CallWeekID:    x.CallWeekID,
		CallFirstCut:  x.CallFirstCut,
		CallSecondCut: x.CallSecondCut,
		CallFinalCut:  x.CallFinalCut,
		CallTotal:     x.CallTotal,
		CallCreatedAt: x.CallCreatedAt,
		CallUpdatedAt: x.CallUpdatedAt,
	}
}

func FromCallModels(list []m.CallModel) []CallResponse {
	out := make([]CallResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromCallModel(it))
	}
	return out
}

type PaymentResponse struct {
	PaymentID         uuid.UUID  `json:"payment_id"`
	PaymentUserID     uuid.UUID  `json:"payment_user_id"`
	PaymentWeekID     uuid.UUID  `json:"payment_week_id"`
	PaymentAmount     float64    `json:"payment_amount"`
	PaymentStatus     string     `json:"payment_status"`
	PaymentBank       string     `json:"payment_bank"`
	PaymentPaidDate   *string    `json:"payment_paid_date,omitempty"`
	PaymentCaptureURL *string    `json:"payment_capture_url,omitempty"`
	PaymentCreatedAt  time.Time  `json:"payment_created_at"`
	PaymentUpdatedAt  *time.Time `json:"payment_updated_at,omitempty"`
}

func FromPaymentModel(x m.PaymentModel) PaymentResponse {
	var paid *string
	if x.PaymentPaidDate != nil {
		s := time.Time(*x.PaymentPaidDate).Format("2006-01-02")
		paid = &s
	}
	return PaymentResponse{
		PaymentID:         x.PaymentID,
		PaymentUserID:     x.PaymentUserID,
		PaymentWeekID:     x.PaymentWeekID,
		PaymentAmount:     x.PaymentAmount,
		PaymentStatus:     x.PaymentStatus,
		PaymentBank:       x.PaymentBank,
		PaymentPaidDate:   paid,
		PaymentCaptureURL: x.PaymentCaptureURL,
		PaymentCreatedAt:  x.PaymentCreatedAt,
		PaymentUpdatedAt:  x.PaymentUpdatedAt,
	}
}

func FromPaymentModels(list []m.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromPaymentModel(it))
	}
	return out
}

type PhoneResponse struct {
	PhoneID        uuid.UUID  `json:"phone_id"`
	PhoneUserID    uuid.UUID  `json:"phone_user_id"`
	PhoneNumber    string     `json:"phone_number"`
	PhoneActive    bool       `json:"phone_active"`
	PhoneCreatedAt time.Time  `json:"phone_created_at"`
	PhoneUpdatedAt *time.Time `json:"phone_updated_at,omitempty"`
}

func FromPhoneModel(x m.PhoneModel) PhoneResponse {
	return PhoneResponse{
		PhoneID:        x.PhoneID,
		PhoneUserID:    x.PhoneUserID,
		PhoneNumber:    x.PhoneNumber,
		PhoneActive:    x.PhoneActive,
		PhoneCreatedAt: x.PhoneCreatedAt,
		PhoneUpdatedAt: x.PhoneUpdatedAt,
	}
}

func FromPhoneModels(list []m.PhoneModel) []PhoneResponse {
	out := make([]PhoneResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromPhoneModel(it))
	}
	return out
}
