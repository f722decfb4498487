package timetable

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-timetable/core/catalog"
)

var class3A = Owner{Kind: OwnerClass, ID: "3A"}

func newCatalog() catalog.Catalog {
	return catalog.New(
		[]string{"Monday", "Tuesday"},
		[]string{"10:00 - 11:00", "08:00 - 09:00", "09:00 - 10:00"},
	)
}

func newLecture(id, day, slot, subject string) Lecture {
	return Lecture{ID: id, Day: day, Slot: slot, Subject: subject, StartTime: catalog.SlotStart(slot)}
}

func TestGrid_UpsertConflict(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())

	first := newLecture("l1", "Monday", "08:00 - 09:00", "Maths")
	require.NoError(t, grid.Upsert(first))

	err := grid.Upsert(newLecture("l2", "Monday", "08:00 - 09:00", "Physics"))
	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, SlotConflictError{Day: "Monday", Slot: "08:00 - 09:00", OccupantID: "l1", LectureID: "l2"}, *conflict)

	got, ok := grid.CellAt("Monday", "08:00 - 09:00")
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, grid.Len())
	_, ok = grid.EntryByID("l2")
	assert.False(t, ok)
}

func TestGrid_UpsertMissingID(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())
	require.NoError(t, grid.Upsert(newLecture("l1", "Monday", "08:00 - 09:00", "Maths")))

	assert.Equal(t, ErrMissingID, grid.Upsert(newLecture("", "Tuesday", "08:00 - 09:00", "Physics")))
	assert.Equal(t, ErrMissingID, grid.Upsert(newLecture("", "Tuesday", "09:00 - 10:00", "Biology")))
	assert.Equal(t, 1, grid.Len())
	_, ok := grid.CellAt("Tuesday", "08:00 - 09:00")
	assert.False(t, ok)
}

func TestGrid_UpsertEdit(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())

	require.NoError(t, grid.Upsert(newLecture("l1", "Monday", "08:00 - 09:00", "Maths")))
	edited := newLecture("l1", "Monday", "08:00 - 09:00", "Advanced Maths")
	edited.Room = "B12"
	require.NoError(t, grid.Upsert(edited))

	got, ok := grid.CellAt("Monday", "08:00 - 09:00")
	require.True(t, ok)
	assert.Equal(t, edited, got)
	assert.Equal(t, 1, grid.Len())
}

func TestGrid_UpsertMove(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())
	require.NoError(t, grid.Upsert(newLecture("l1", "Monday", "08:00 - 09:00", "Maths")))
	require.NoError(t, grid.Upsert(newLecture("l2", "Tuesday", "09:00 - 10:00", "Biology")))

	// moving onto an occupied cell fails and leaves l1 in place
	var conflict *SlotConflictError
	require.ErrorAs(t, grid.Upsert(newLecture("l1", "Tuesday", "09:00 - 10:00", "Maths")), &conflict)
	_, ok := grid.CellAt("Monday", "08:00 - 09:00")
	assert.True(t, ok)

	moved := newLecture("l1", "Tuesday", "10:00 - 11:00", "Maths")
	require.NoError(t, grid.Upsert(moved))
	_, ok = grid.CellAt("Monday", "08:00 - 09:00")
	assert.False(t, ok, "previous cell must be vacated")
	got, ok := grid.EntryByID("l1")
	require.True(t, ok)
	assert.Equal(t, moved, got)
	assert.Equal(t, 2, grid.Len())
}

func TestGrid_Remove(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())
	require.NoError(t, grid.Upsert(newLecture("l1", "Monday", "08:00 - 09:00", "Maths")))

	assert.True(t, grid.Remove("l1"))
	assert.False(t, grid.Remove("l1"))
	assert.False(t, grid.Remove("unknown"))
	_, ok := grid.CellAt("Monday", "08:00 - 09:00")
	assert.False(t, ok)
	assert.Zero(t, grid.Len())

	// the freed cell can be reused by another lecture
	assert.NoError(t, grid.Upsert(newLecture("l2", "Monday", "08:00 - 09:00", "Physics")))
}

func TestGrid_EntriesForDay(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())
	require.NoError(t, grid.Upsert(newLecture("l3", "Monday", "10:00 - 11:00", "History")))
	require.NoError(t, grid.Upsert(newLecture("l1", "Monday", "08:00 - 09:00", "Maths")))
	require.NoError(t, grid.Upsert(newLecture("l2", "Tuesday", "09:00 - 10:00", "Biology")))

	ids := func(day string) []string {
		var out []string
		for l := range grid.EntriesForDay(day) {
			out = append(out, l.ID)
		}
		return out
	}

	assert.Equal(t, []string{"l1", "l3"}, ids("Monday"))
	assert.Equal(t, []string{"l2"}, ids("Tuesday"))
	assert.Empty(t, ids("Sunday"))

	// restartable and recomputed from the current grid
	seq := grid.EntriesForDay("Monday")
	assert.Len(t, slices.Collect(seq), 2)
	grid.Remove("l3")
	assert.Len(t, slices.Collect(seq), 1)

	// early stop
	require.NoError(t, grid.Upsert(newLecture("l4", "Monday", "09:00 - 10:00", "Art")))
	var first []string
	for l := range grid.EntriesForDay("Monday") {
		first = append(first, l.ID)
		break
	}
	assert.Equal(t, []string{"l1"}, first)
}

func TestGrid_AxisRemovalKeepsLectures(t *testing.T) {
	cat := newCatalog()
	grid := NewGrid(class3A, cat)
	mon := newLecture("l1", "Monday", "08:00 - 09:00", "Maths")
	tue := newLecture("l2", "Tuesday", "10:00 - 11:00", "Biology")
	require.NoError(t, grid.Upsert(mon))
	require.NoError(t, grid.Upsert(tue))

	cat.RemoveDay("Monday")
	cat.RemoveSlot("10:00 - 11:00")
	grid.SetAxes(cat)

	assert.Empty(t, slices.Collect(grid.EntriesForDay("Monday")))
	assert.Empty(t, slices.Collect(grid.EntriesForDay("Tuesday")))

	got, ok := grid.EntryByID("l1")
	require.True(t, ok)
	assert.Equal(t, mon, got)
	got, ok = grid.CellAt("Tuesday", "10:00 - 11:00")
	require.True(t, ok)
	assert.Equal(t, tue, got)
	assert.Equal(t, []Lecture{mon, tue}, grid.Orphans())
	assert.Equal(t, 2, grid.Len())

	// restoring the labels makes them reachable again
	require.NoError(t, cat.AddDay("Monday"))
	require.NoError(t, cat.AddSlot("10:00 - 11:00"))
	grid.SetAxes(cat)
	assert.Equal(t, []Lecture{mon}, slices.Collect(grid.EntriesForDay("Monday")))
	assert.Empty(t, grid.Orphans())
}

func TestGrid_Rows(t *testing.T) {
	grid := NewGrid(class3A, newCatalog())
	maths := newLecture("l1", "Monday", "08:00 - 09:00", "Maths")
	bio := newLecture("l2", "Tuesday", "10:00 - 11:00", "Biology")
	require.NoError(t, grid.Upsert(maths))
	require.NoError(t, grid.Upsert(bio))

	assert.Equal(t, []Row{
		{Slot: "08:00 - 09:00", Cells: []*Lecture{&maths, nil}},
		{Slot: "09:00 - 10:00", Cells: []*Lecture{nil, nil}},
		{Slot: "10:00 - 11:00", Cells: []*Lecture{nil, &bio}},
	}, grid.Rows())

	view := grid.View()
	assert.Equal(t, class3A, view.Owner)
	assert.Equal(t, []string{"Monday", "Tuesday"}, view.Days)
	assert.Equal(t, []string{"08:00 - 09:00", "09:00 - 10:00", "10:00 - 11:00"}, view.Slots)
	assert.Len(t, view.Rows, 3)
}

func TestGrid_EmptyAxes(t *testing.T) {
	grid := NewGrid(class3A, catalog.Catalog{})
	require.NoError(t, grid.Upsert(newLecture("l1", "Monday", "08:00 - 09:00", "Maths")))

	assert.Empty(t, grid.Rows())
	assert.Empty(t, slices.Collect(grid.EntriesForDay("Monday")))
	assert.Len(t, grid.Orphans(), 1)

	view := NewGrid(class3A, nil).View()
	assert.Equal(t, []string{}, view.Days)
	assert.Equal(t, []string{}, view.Slots)
}

func TestParseOwner(t *testing.T) {
	owner, err := ParseOwner(" Teacher ", "t-42")
	require.NoError(t, err)
	assert.Equal(t, Owner{Kind: OwnerTeacher, ID: "t-42"}, owner)
	assert.Equal(t, "teacher:t-42", owner.String())

	_, err = ParseOwner("school", "1")
	assert.Equal(t, ErrInvalidOwner, err)
	_, err = ParseOwner("class", " ")
	assert.Equal(t, ErrInvalidOwner, err)
}
