package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"overtimepay/models"
	"overtimepay/overtime"
)

var (
	ErrEntryNotFound = errors.New("overtime entry not found")
	ErrForbidden     = errors.New("entry belongs to another user")
)

// ListEntries returns a user's entries starting inside [from, to], newest
// first. Zero bounds are open.
func ListEntries(db *gorm.DB, userID uint, from, to time.Time) ([]models.OvertimeEntry, error) {
	query := db.Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("start_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("start_at <= ?", to.UTC())
	}

	var entries []models.OvertimeEntry
	if err := query.Order("start_at desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list overtime entries: %w", err)
	}
	return entries, nil
}

func GetEntry(db *gorm.DB, userID uint, id string) (*models.OvertimeEntry, error) {
	var entry models.OvertimeEntry
	err := db.Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load overtime entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}
	return &entry, nil
}

// AcceptRecord validates the record against the user's accepted entries and
// stores it, replacing any entry with the same ID. Validation and conflict
// errors come back as *overtime.ValidationError / *overtime.ConflictError
// and nothing is written.
func AcceptRecord(db *gorm.DB, userID uint, r overtime.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID).Error; err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		var current models.OvertimeEntry
		err := tx.Where("id = ?", r.ID).First(&current).Error
		switch {
		case err == nil && current.UserID != userID:
			return ErrForbidden
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to load overtime entry: %w", err)
		}

		var nearby []models.OvertimeEntry
		if err := tx.Where("user_id = ? AND start_at < ? AND end_at > ?", userID, r.End.UTC(), r.Start.UTC()).
			Find(&nearby).Error; err != nil {
			return fmt.Errorf("failed to load overlapping entries: %w", err)
		}
		if err := overtime.Accept(r, models.ToRecords(nearby, r.Start.Location())); err != nil {
			return err
		}

		if err := tx.Where("id = ?", r.ID).Delete(&models.OvertimeEntry{}).Error; err != nil {
			return fmt.Errorf("failed to replace overtime entry: %w", err)
		}
		entry := models.EntryFromRecord(userID, r)
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to save overtime entry: %w", err)
		}
		return nil
	})
}

// lockUser takes the user's row lock so concurrent acceptances for one user
// run one after another. SQLite has no row locks; its single connection
// already serializes writers.
func lockUser(tx *gorm.DB, userID uint) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user models.User
	return tx.Select("id").First(&user, userID)
}

func DeleteEntry(db *gorm.DB, userID uint, id string) error {
	if _, err := GetEntry(db, userID, id); err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Delete(&models.OvertimeEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete overtime entry: %w", err)
	}
	return nil
}
