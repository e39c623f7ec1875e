package models

import (
	"time"

	"overtimepay/overtime"
)

// OvertimeEntry is the stored form of an overtime.Record. Instants are stored
// in UTC; edits replace the row under the same ID.
type OvertimeEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;index:idx_entries_user_start" json:"user_id"`
	StartAt   time.Time `gorm:"not null;index:idx_entries_user_start" json:"start"`
	EndAt     time.Time `gorm:"not null" json:"end"`
	Category  string    `gorm:"size:20" json:"category"`
	ForceFull bool      `gorm:"default:false" json:"force_full_calculation"`
	Reason    string    `gorm:"size:500" json:"reason"`
}

// ToRecord converts a row for the calculator. Rows written before categories
// existed have an empty category and count as weekday work.
func (e *OvertimeEntry) ToRecord(loc *time.Location) overtime.Record {
	if loc == nil {
		loc = time.Local
	}
	category := overtime.Category(e.Category)
	if category == "" {
		category = overtime.Weekday
	}
	return overtime.Record{
		ID:                   e.ID,
		Start:                e.StartAt.In(loc),
		End:                  e.EndAt.In(loc),
		Category:             category,
		ForceFullCalculation: e.ForceFull,
		Reason:               e.Reason,
	}
}

func EntryFromRecord(userID uint, r overtime.Record) OvertimeEntry {
	return OvertimeEntry{
		ID:        r.ID,
		UserID:    userID,
		StartAt:   r.Start.UTC(),
		EndAt:     r.End.UTC(),
		Category:  string(r.Category),
		ForceFull: r.ForceFullCalculation,
		Reason:    r.Reason,
	}
}

func ToRecords(entries []OvertimeEntry, loc *time.Location) []overtime.Record {
	records := make([]overtime.Record, len(entries))
	for i := range entries {
		records[i] = entries[i].ToRecord(loc)
	}
	return records
}
