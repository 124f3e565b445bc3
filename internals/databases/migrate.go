package database

import (
	"log"

	"gorm.io/gorm"

	billingModel "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/billing/model"
	userModel "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/model"
)

// Migrate crea/actualiza el esquema. Las FKs con cascada y los índices únicos
// compuestos salen de los tags de los modelos, así el mismo esquema sirve en
// Postgres y en sqlite (tests).
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] Ejecutando migraciones...")
	return db.AutoMigrate(
		&userModel.UserModel{},
		&billingModel.PhoneModel{},
		&billingModel.WeekModel{},
		&billingModel.CallModel{},
		&billingModel.PaymentModel{},
	)
}
