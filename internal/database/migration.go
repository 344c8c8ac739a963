package database

import (
	"fmt"

	"github.com/palak-raj09/eil-project/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.PasswordReset{},
		&models.LoginAttempt{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
