package sqlxrepos

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-timetable/core/catalog"
	"github.com/trezcool/masomo-timetable/core/timetable"
	"github.com/trezcool/masomo-timetable/storage/database"
)

// openTestDB connects to TEST_DATABASE_URL and migrates it, or skips the test.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	db, err := database.OpenURL(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		_, _ = db.Exec(`TRUNCATE timetable_settings, lectures`)
		_ = db.Close()
	})
	_, err = db.Exec(`TRUNCATE timetable_settings, lectures`)
	require.NoError(t, err)
	return db
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	store := NewSettingsStore(openTestDB(t))

	_, err := store.Get(ctx, catalog.DaysKey)
	assert.Equal(t, catalog.ErrKeyNotFound, err)

	require.NoError(t, store.Set(ctx, catalog.DaysKey, []string{"Monday", "Tuesday"}))
	require.NoError(t, store.Set(ctx, catalog.DaysKey, []string{"Tuesday", "Monday", "Friday"}))
	got, err := store.Get(ctx, catalog.DaysKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tuesday", "Monday", "Friday"}, got)

	require.NoError(t, store.Set(ctx, catalog.SlotsKey, nil))
	got, err = store.Get(ctx, catalog.SlotsKey)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestLectureRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository(openTestDB(t))
	class := timetable.Owner{Kind: timetable.OwnerClass, ID: "3A"}

	l1 := timetable.Lecture{ID: "l1", Day: "Monday", Slot: "08:00 - 09:00", Subject: "Maths", StartTime: "08:00", Notes: null.StringFrom("quiz")}
	l2 := timetable.Lecture{ID: "l2", Day: "Monday", Slot: "09:00 - 10:00", Subject: "Physics", Room: "Lab 1", StartTime: "09:00"}
	require.NoError(t, repo.SaveLecture(ctx, class, l2))
	require.NoError(t, repo.SaveLecture(ctx, class, l1))
	require.NoError(t, repo.SaveLecture(ctx, timetable.Owner{Kind: timetable.OwnerTeacher, ID: "t1"}, l1))

	lectures, err := repo.QueryLectures(ctx, class)
	require.NoError(t, err)
	assert.Equal(t, []timetable.Lecture{l1, l2}, lectures)

	l1.Subject = "Algebra"
	l1.Notes = null.String{}
	require.NoError(t, repo.SaveLecture(ctx, class, l1))
	require.NoError(t, repo.DeleteLecture(ctx, class, "l2"))
	require.NoError(t, repo.DeleteLecture(ctx, class, "l2"))

	lectures, err = repo.QueryLectures(ctx, class)
	require.NoError(t, err)
	assert.Equal(t, []timetable.Lecture{l1}, lectures)
}

func TestLectureRepository_CellConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository(openTestDB(t))
	class := timetable.Owner{Kind: timetable.OwnerClass, ID: "3A"}

	maths := timetable.Lecture{ID: "l1", Day: "Monday", Slot: "08:00 - 09:00", Subject: "Maths", StartTime: "08:00"}
	bio := timetable.Lecture{ID: "l2", Day: "Tuesday", Slot: "08:00 - 09:00", Subject: "Biology", StartTime: "08:00"}
	require.NoError(t, repo.SaveLecture(ctx, class, maths))
	require.NoError(t, repo.SaveLecture(ctx, class, bio))

	physics := timetable.Lecture{ID: "l3", Day: "Monday", Slot: "08:00 - 09:00", Subject: "Physics", StartTime: "08:00"}
	var conflict *timetable.SlotConflictError
	require.ErrorAs(t, repo.SaveLecture(ctx, class, physics), &conflict)
	assert.Equal(t, timetable.SlotConflictError{Day: "Monday", Slot: "08:00 - 09:00", OccupantID: "l1", LectureID: "l3"}, *conflict)

	bio.Day = "Monday"
	require.ErrorAs(t, repo.SaveLecture(ctx, class, bio), &conflict)
	assert.Equal(t, "l1", conflict.OccupantID)

	require.NoError(t, repo.SaveLecture(ctx, timetable.Owner{Kind: timetable.OwnerTeacher, ID: "t1"}, physics))
	lectures, err := repo.QueryLectures(ctx, class)
	require.NoError(t, err)
	assert.Len(t, lectures, 2)
}
