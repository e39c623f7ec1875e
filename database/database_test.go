package database

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"overtimepay/models"
	"overtimepay/overtime"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, FullName: username, PasswordHash: "x", Role: models.RoleEmployee}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func rec(id string, start time.Time, hours int, category overtime.Category) overtime.Record {
	return overtime.Record{
		ID:       id,
		Start:    start,
		End:      start.Add(time.Duration(hours) * time.Hour),
		Category: category,
	}
}

func TestAcceptRecord_StoresAndRejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	evening := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	// GIVEN: an accepted 18:00-20:00 record
	require.NoError(t, AcceptRecord(db, user.ID, rec("a", evening, 2, overtime.Weekday)))

	// WHEN: a second record touches its end
	// THEN: it is accepted
	require.NoError(t, AcceptRecord(db, user.ID, rec("b", evening.Add(2*time.Hour), 1, overtime.Weekday)))

	// WHEN: a third record overlaps both
	err := AcceptRecord(db, user.ID, rec("c", evening.Add(time.Hour), 2, overtime.Weekday))

	// THEN: it is rejected with both conflicts and nothing is written
	var conflict *overtime.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Len(t, conflict.Conflicts, 2)

	entries, err := ListEntries(db, user.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAcceptRecord_OtherUsersDoNotConflict(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	evening := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	require.NoError(t, AcceptRecord(db, alice.ID, rec("a", evening, 2, overtime.Weekday)))
	require.NoError(t, AcceptRecord(db, bob.ID, rec("b", evening, 2, overtime.Weekday)))
}

func TestAcceptRecord_EditReplacesSameID(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	evening := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, AcceptRecord(db, user.ID, rec("a", evening, 2, overtime.Weekday)))

	// Moving "a" by an hour overlaps only its old self.
	edited := rec("a", evening.Add(time.Hour), 2, overtime.RestDay)
	edited.Reason = "moved"
	require.NoError(t, AcceptRecord(db, user.ID, edited))

	entries, err := ListEntries(db, user.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0].ToRecord(time.UTC)
	assert.Equal(t, "a", got.ID)
	assert.True(t, edited.Start.Equal(got.Start))
	assert.True(t, edited.End.Equal(got.End))
	assert.Equal(t, overtime.RestDay, got.Category)
	assert.Equal(t, "moved", got.Reason)
}

func TestAcceptRecord_ForeignIDForbidden(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	evening := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, AcceptRecord(db, alice.ID, rec("a", evening, 2, overtime.Weekday)))

	err := AcceptRecord(db, bob.ID, rec("a", evening.Add(24*time.Hour), 2, overtime.Weekday))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, DeleteEntry(db, bob.ID, "a"), ErrForbidden)
}

func TestAcceptRecord_Invalid(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	evening := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	err := AcceptRecord(db, user.ID, rec("a", evening, 0, overtime.Weekday))
	assert.ErrorIs(t, err, overtime.ErrValidation)
}

func TestListEntries_Range(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	for i, day := range []int{14, 15, 20, 31} {
		start := time.Date(2024, 1, day, 18, 0, 0, 0, time.UTC)
		require.NoError(t, AcceptRecord(db, user.ID, rec(fmt.Sprintf("r%d", i), start, 1, overtime.Weekday)))
	}

	period, err := overtime.ResolvePeriodIn("2024-02", 15, time.UTC)
	require.NoError(t, err)
	entries, err := ListEntries(db, user.ID, period.Start, period.End)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "r3", entries[0].ID)
	assert.Equal(t, "r1", entries[2].ID)
}

func TestDeleteEntry(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	require.NoError(t, AcceptRecord(db, user.ID, rec("a", time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), 1, overtime.Weekday)))

	require.NoError(t, DeleteEntry(db, user.ID, "a"))
	assert.ErrorIs(t, DeleteEntry(db, user.ID, "a"), ErrEntryNotFound)
}

func TestSettings_SaveAndLoad(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")

	settings, err := GetSettings(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, settings.ID)
	assert.Equal(t, 1, settings.Payday)

	settings.MonthlySalary = 48000
	settings.Payday = 15
	require.NoError(t, SaveSettings(db, &settings))

	again := models.Settings{UserID: user.ID, MonthlySalary: 50000, Payday: 10}
	require.NoError(t, SaveSettings(db, &again))
	assert.Equal(t, settings.ID, again.ID)

	loaded, err := GetSettings(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, loaded.MonthlySalary)
	assert.Equal(t, 10, loaded.Payday)

	var count int64
	db.Model(&models.Settings{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedDefaultAdmin(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, seedDefaultAdmin(db))
	require.NoError(t, seedDefaultAdmin(db))

	var admins []models.User
	require.NoError(t, db.Where("username = ?", "admin").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin())
	assert.True(t, admins[0].MustChangePassword)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", false)
	assert.Error(t, err)
}

func TestAcceptRecord_ConcurrentOverlapsKeepOne(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	evening := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	// GIVEN: several overlapping records submitted at once
	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := evening.Add(time.Duration(i) * 10 * time.Minute)
			errs <- AcceptRecord(db, user.ID, rec(fmt.Sprintf("r%d", i), start, 2, overtime.Weekday))
		}()
	}
	wg.Wait()
	close(errs)

	// THEN: exactly one is accepted and the rest conflict
	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, overtime.ErrConflict)
	}
	assert.Equal(t, 1, accepted)

	entries, err := ListEntries(db, user.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAcceptRecord_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	err := AcceptRecord(db, 999, rec("a", time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), 2, overtime.Weekday))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLockUser_PostgresLocksRow(t *testing.T) {
	pg, err := gorm.Open(postgres.Open("host=localhost user=postgres dbname=overtime sslmode=disable"),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	sql := pg.ToSQL(func(tx *gorm.DB) *gorm.DB { return lockUser(tx, 7) })
	assert.Contains(t, sql, `FROM "users"`)
	assert.Contains(t, sql, "FOR UPDATE")

	lite := newTestDB(t)
	sql = lite.ToSQL(func(tx *gorm.DB) *gorm.DB { return lockUser(tx, 7) })
	assert.NotContains(t, sql, "FOR UPDATE")
}
