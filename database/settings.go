package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"overtimepay/models"
)

// GetSettings returns the user's settings, or unsaved defaults if the user
// has never saved any.
func GetSettings(db *gorm.DB, userID uint) (models.Settings, error) {
	var settings models.Settings
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func SaveSettings(db *gorm.DB, settings *models.Settings) error {
	if settings.ID == 0 {
		var existing models.Settings
		err := db.Where("user_id = ?", settings.UserID).First(&existing).Error
		if err == nil {
			settings.ID = existing.ID
			settings.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load settings: %w", err)
		}
	}
	if err := db.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
