package users

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/configs"
	"github.com/jesusbritomolina/EscombrosApp-sub000/internals/constants"
	model "github.com/jesusbritomolina/EscombrosApp-sub000/internals/features/users/model"
)

// SeedAdminFromEnv garantiza que exista al menos un admin para entrar al
// panel. Idempotente: si ya hay un admin no toca nada.
func SeedAdminFromEnv(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.UserModel{}).
		Where("role = ?", constants.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("❌ Seed admin: no se pudo consultar users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := configs.GetEnv("ADMIN_EMAIL")
	password := configs.GetEnv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ Seed admin: faltan ADMIN_EMAIL/ADMIN_PASSWORD, se omite")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Seed admin: hash de contraseña falló: %v", err)
		return
	}

	admin := &model.UserModel{
		UserName: configs.GetEnv("ADMIN_USERNAME", "admin"),
		Email:    email,
		Password: string(hashed),
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("❌ Seed admin: %v", err)
		return
	}
	log.Printf("✅ Seed admin: usuario %s creado", admin.Email)
}
