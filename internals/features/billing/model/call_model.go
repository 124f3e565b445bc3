package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CallModel: registro por (teléfono, semana) con los tres cortes y su total.
// Máximo una fila por par (phone, week).
type CallModel struct {
	CallID uuid.UUID `gorm:"column:call_id;type:uuid;default:gen_random_uuid();primaryKey" json:"call_id"`

	CallPhoneID uuid.UUID `gorm:"column:call_phone_id;type:uuid;not null;uniqueIndex:uq_calls_phone_week" json:"call_phone_id"`
	CallWeekID  uuid.UUID `gorm:"column:call_week_id;type:uuid;not null;uniqueIndex:uq_calls_phone_week;index" json:"call_week_id"`

	CallFirstCut  float64 `gorm:"column:call_first_cut;type:numeric(12,2);not null;default:0" json:"call_first_cut"`
	CallSecondCut float64 `gorm:"column:call_second_cut;type:numeric(12,2);not null;default:0" json:"call_second_cut"`
	CallFinalCut  float64 `gorm:"column:call_final_cut;type:numeric(12,2);not null;default:0" json:"call_final_cut"`
	CallTotal     float64 `gorm:"column:call_total;type:numeric(12,2);not null;default:0" json:"call_total"`

	CallCreatedAt time.Time  `gorm:"column:call_created_at;autoCreateTime" json:"call_created_at"`
	CallUpdatedAt *time.Time `gorm:"column:call_updated_at;autoUpdateTime" json:"call_updated_at,omitempty"`

	// Borrar un teléfono con llamadas se bloquea en el servicio (y en la FK);
	// borrar una semana arrastra sus llamadas.
	Phone *PhoneModel `gorm:"foreignKey:CallPhoneID;references:PhoneID;constraint:OnDelete:RESTRICT" json:"-"`
	Week  *WeekModel  `gorm:"foreignKey:CallWeekID;references:WeekID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CallModel) TableName() string { return "calls" }

func (c *CallModel) BeforeCreate(tx *gorm.DB) error {
	if c.CallID == uuid.Nil {
		c.CallID = uuid.New()
	}
	return nil
}
