package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusPaid      = "Paid"
	PaymentStatusCancelled = "Cancelled"
)

// PaymentModel: monto adeudado por (usuario, semana), con comprobante opcional
// en el almacén de objetos. capture_id y capture_url van siempre en pareja:
// ambos vacíos o ambos apuntando a un objeto vivo.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentUserID uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;uniqueIndex:uq_payments_user_week" json:"payment_user_id"`
	PaymentWeekID uuid.UUID `gorm:"column:payment_week_id;type:uuid;not null;uniqueIndex:uq_payments_user_week;index" json:"payment_week_id"`

	PaymentAmount float64 `gorm:"column:payment_amount;type:numeric(12,2);not null;default:0" json:"payment_amount"`
	PaymentStatus string  `gorm:"column:payment_status;type:varchar(20);not null;default:'Pending'" json:"payment_status"`
	PaymentBank   string  `gorm:"column:payment_bank;type:varchar(50)" json:"payment_bank"`

	PaymentPaidDate *datatypes.Date `gorm:"column:payment_paid_date;type:date" json:"payment_paid_date,omitempty"`

	PaymentCaptureID  *string `gorm:"column:payment_capture_id;type:text" json:"payment_capture_id,omitempty"`
	PaymentCaptureURL *string `gorm:"column:payment_capture_url;type:text" json:"payment_capture_url,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`

	Week *WeekModel `gorm:"foreignKey:PaymentWeekID;references:WeekID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

// HasCapture indica si el pago tiene comprobante asociado.
func (p *PaymentModel) HasCapture() bool {
	return p.PaymentCaptureID != nil && *p.PaymentCaptureID != ""
}
