package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhoneModel struct {
	PhoneID uuid.UUID `gorm:"column:phone_id;type:uuid;default:gen_random_uuid();primaryKey" json:"phone_id"`

	PhoneUserID uuid.UUID `gorm:"column:phone_user_id;type:uuid;not null;index" json:"phone_user_id"`

	PhoneNumber string `gorm:"column:phone_number;type:varchar(20);uniqueIndex:uq_phones_number;not null" json:"phone_number"`

	// Elegible para el fan-out de llamadas al abrir una semana nueva.
	PhoneActive bool `gorm:"column:phone_active;not null;default:true" json:"phone_active"`

	PhoneCreatedAt time.Time  `gorm:"column:phone_created_at;autoCreateTime" json:"phone_created_at"`
	PhoneUpdatedAt *time.Time `gorm:"column:phone_updated_at;autoUpdateTime" json:"phone_updated_at,omitempty"`
}

func (PhoneModel) TableName() string { return "phones" }

func (p *PhoneModel) BeforeCreate(tx *gorm.DB) error {
	if p.PhoneID == uuid.Nil {
		p.PhoneID = uuid.New()
	}
	return nil
}
