package seeds

import (
	"gorm.io/gorm"

	users "github.com/jesusbritomolina/EscombrosApp-sub000/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	//* User
	users.SeedAdminFromEnv(db)
}
