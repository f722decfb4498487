package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/masomo-timetable/core/timetable"
)

type lectureRepository struct {
	db *lectureTable
}

var _ timetable.Repository = (*lectureRepository)(nil) // interface compliance check

func NewLectureRepository(db *DB) timetable.Repository {
	return &lectureRepository{db: db.lecture}
}

// QueryLectures returns the owner's lectures ordered by ID.
func (repo *lectureRepository) QueryLectures(_ context.Context, owner timetable.Owner) ([]timetable.Lecture, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := repo.db.table[owner]
	lectures := make([]timetable.Lecture, 0, len(rows))
	for _, l := range rows {
		lectures = append(lectures, *l)
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].ID < lectures[j].ID })
	return lectures, nil
}

// SaveLecture stores l unless another lecture of owner holds its cell.
func (repo *lectureRepository) SaveLecture(_ context.Context, owner timetable.Owner, l timetable.Lecture) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rows, ok := repo.db.table[owner]
	if !ok {
		rows = make(map[string]*timetable.Lecture)
		repo.db.table[owner] = rows
	}
	for id, row := range rows {
		if id != l.ID && row.Day == l.Day && row.Slot == l.Slot {
			return &timetable.SlotConflictError{Day: l.Day, Slot: l.Slot, OccupantID: id, LectureID: l.ID}
		}
	}
	rows[l.ID] = &l
	return nil
}

func (repo *lectureRepository) DeleteLecture(_ context.Context, owner timetable.Owner, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.table[owner], id)
	return nil
}
