package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeekModel es el período de facturación: (año, mes, etiqueta) único.
// Ej: 2024 / "Marzo" / "01 - 07".
type WeekModel struct {
	WeekID uuid.UUID `gorm:"column:week_id;type:uuid;default:gen_random_uuid();primaryKey" json:"week_id"`

	WeekYear  int16  `gorm:"column:week_year;type:smallint;not null;uniqueIndex:uq_weeks_period" json:"week_year"`
	WeekMonth string `gorm:"column:week_month;type:varchar(20);not null;uniqueIndex:uq_weeks_period" json:"week_month"`
	WeekLabel string `gorm:"column:week_label;type:varchar(20);not null;uniqueIndex:uq_weeks_period" json:"week_label"`

	WeekCreatedAt time.Time  `gorm:"column:week_created_at;autoCreateTime" json:"week_created_at"`
	WeekUpdatedAt *time.Time `gorm:"column:week_updated_at;autoUpdateTime" json:"week_updated_at,omitempty"`
}

func (WeekModel) TableName() string { return "weeks" }

func (w *WeekModel) BeforeCreate(tx *gorm.DB) error {
	if w.WeekID == uuid.Nil {
		w.WeekID = uuid.New()
	}
	return nil
}
