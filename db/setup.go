package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/models"
)

const (
	defaultAdminName     = "Super Admin"
	defaultAdminEmail    = "Admin@BlackBuck.com"
	defaultAdminPassword = "testPassAdmin77"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Task{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdmin creates the single ADMIN account if none exists yet. Admin
// registration is closed, so this is the only way an ADMIN comes into being.
func SeedAdmin(database *gorm.DB) error {
	var count int64

	if err := database.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         defaultAdminName,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleAdmin,
	}

	if err := database.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin account created: %s", email)
	return nil
}
