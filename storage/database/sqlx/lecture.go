package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core/timetable"
)

const (
	uniqueViolation   = "23505"
	cellUniqueKeyName = "lectures_cell_key"
)

type (
	lectureRepository struct {
		db *sqlx.DB
	}

	lectureRow struct {
		timetable.Lecture
		OwnerKind string `db:"owner_kind"`
		OwnerID   string `db:"owner_id"`
	}
)

var _ timetable.Repository = (*lectureRepository)(nil) // interface compliance check

func NewLectureRepository(db *sqlx.DB) timetable.Repository {
	return &lectureRepository{db: db}
}

// QueryLectures returns the owner's lectures ordered by ID.
func (repo *lectureRepository) QueryLectures(ctx context.Context, owner timetable.Owner) ([]timetable.Lecture, error) {
	const q = `
		SELECT id, day, slot, subject, room, teacher_name, class_ref, start_time, notes
		FROM lectures
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY id`
	lectures := make([]timetable.Lecture, 0)
	if err := repo.db.SelectContext(ctx, &lectures, q, owner.Kind, owner.ID); err != nil {
		return nil, errors.Wrapf(err, "selecting lectures of %s", owner)
	}
	return lectures, nil
}

func (repo *lectureRepository) SaveLecture(ctx context.Context, owner timetable.Owner, l timetable.Lecture) error {
	const q = `
		INSERT INTO lectures (owner_kind, owner_id, id, day, slot, subject, room, teacher_name, class_ref, start_time, notes)
		VALUES (:owner_kind, :owner_id, :id, :day, :slot, :subject, :room, :teacher_name, :class_ref, :start_time, :notes)
		ON CONFLICT (owner_kind, owner_id, id) DO UPDATE SET
			day = EXCLUDED.day,
			slot = EXCLUDED.slot,
			subject = EXCLUDED.subject,
			room = EXCLUDED.room,
			teacher_name = EXCLUDED.teacher_name,
			class_ref = EXCLUDED.class_ref,
			start_time = EXCLUDED.start_time,
			notes = EXCLUDED.notes`
	row := lectureRow{Lecture: l, OwnerKind: string(owner.Kind), OwnerID: owner.ID}
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == cellUniqueKeyName {
			return repo.cellConflict(ctx, owner, l)
		}
		return errors.Wrapf(err, "saving lecture %s", l.ID)
	}
	return nil
}

// cellConflict builds the SlotConflictError for l, naming the occupant when it can still be found.
func (repo *lectureRepository) cellConflict(ctx context.Context, owner timetable.Owner, l timetable.Lecture) error {
	const q = `SELECT id FROM lectures WHERE owner_kind = $1 AND owner_id = $2 AND day = $3 AND slot = $4`
	conflict := &timetable.SlotConflictError{Day: l.Day, Slot: l.Slot, LectureID: l.ID}
	_ = repo.db.GetContext(ctx, &conflict.OccupantID, q, owner.Kind, owner.ID, l.Day, l.Slot)
	return conflict
}

func (repo *lectureRepository) DeleteLecture(ctx context.Context, owner timetable.Owner, id string) error {
	const q = `DELETE FROM lectures WHERE owner_kind = $1 AND owner_id = $2 AND id = $3`
	if _, err := repo.db.ExecContext(ctx, q, owner.Kind, owner.ID, id); err != nil {
		return errors.Wrapf(err, "deleting lecture %s", id)
	}
	return nil
}
