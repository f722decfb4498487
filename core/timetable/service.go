package timetable

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core"
)

type (
	Repository interface {
		QueryLectures(ctx context.Context, owner Owner) ([]Lecture, error)
		// SaveLecture creates or replaces the lecture with l.ID. It returns a
		// *SlotConflictError, storing nothing, when another lecture of owner holds l's cell.
		SaveLecture(ctx context.Context, owner Owner, l Lecture) error
		// DeleteLecture is a no-op if no lecture has that ID.
		DeleteLecture(ctx context.Context, owner Owner, id string) error
	}

	Service interface {
		Grid(ctx context.Context, owner Owner, axes Axes) (*Grid, error)
		Upsert(ctx context.Context, owner Owner, axes Axes, nl NewLecture) (Lecture, error)
		Remove(ctx context.Context, owner Owner, id string) error
		DayEntries(ctx context.Context, owner Owner, axes Axes, day string) ([]Lecture, error)
		NextLecture(ctx context.Context, owner Owner, axes Axes, now time.Time) (Lecture, bool, error)
	}

	service struct {
		repo   Repository
		logger core.Logger
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, logger core.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// Grid loads the owner's lectures onto a new Grid.
func (svc *service) Grid(ctx context.Context, owner Owner, axes Axes) (*Grid, error) {
	lectures, err := svc.repo.QueryLectures(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "querying lectures")
	}
	grid := NewGrid(owner, axes)
	for _, l := range lectures {
		if err := grid.Upsert(l); err != nil {
			// stored data should never overlap; keep the first lecture and carry on
			svc.logger.Warn("loading grid: "+err.Error(), map[string]interface{}{"owner": owner.String()})
		}
	}
	return grid, nil
}

func (svc *service) Upsert(ctx context.Context, owner Owner, axes Axes, nl NewLecture) (Lecture, error) {
	var flds []core.FieldError
	if !slices.Contains(axes.Days(), nl.Day) {
		flds = append(flds, core.FieldError{Field: "day", Error: "unknown day"})
	}
	if !slices.Contains(axes.Slots(), nl.Slot) {
		flds = append(flds, core.FieldError{Field: "slot", Error: "unknown time slot"})
	}
	if flds != nil {
		return Lecture{}, core.NewValidationError(errors.New("lecture is outside the timetable"), flds...)
	}

	grid, err := svc.Grid(ctx, owner, axes)
	if err != nil {
		return Lecture{}, err
	}

	l := nl.lecture()
	if l.ID == "" {
		l.ID = uuid.NewString()
	} else if _, ok := grid.EntryByID(l.ID); !ok {
		return Lecture{}, ErrNotFound
	}

	if err := grid.Upsert(l); err != nil {
		return Lecture{}, conflictError(err)
	}
	// the grid may be stale by now; the repository has the final say on the cell
	if err := svc.repo.SaveLecture(ctx, owner, l); err != nil {
		var conflict *SlotConflictError
		if errors.As(err, &conflict) {
			return Lecture{}, conflictError(conflict)
		}
		return Lecture{}, errors.Wrap(err, "saving lecture")
	}
	return l, nil
}

// conflictError maps a SlotConflictError to a validation error on the `slot` field.
func conflictError(err error) error {
	var conflict *SlotConflictError
	if errors.As(err, &conflict) {
		return core.NewValidationError(err, core.FieldError{Field: "slot", Error: err.Error()})
	}
	return err
}

func (svc *service) Remove(ctx context.Context, owner Owner, id string) error {
	if err := svc.repo.DeleteLecture(ctx, owner, id); err != nil {
		return errors.Wrap(err, "deleting lecture")
	}
	return nil
}

func (svc *service) DayEntries(ctx context.Context, owner Owner, axes Axes, day string) ([]Lecture, error) {
	grid, err := svc.Grid(ctx, owner, axes)
	if err != nil {
		return nil, err
	}
	entries := make([]Lecture, 0)
	for l := range grid.EntriesForDay(day) {
		entries = append(entries, l)
	}
	return entries, nil
}

// NextLecture finds the owner's next lecture of the day `now` falls on.
func (svc *service) NextLecture(ctx context.Context, owner Owner, axes Axes, now time.Time) (Lecture, bool, error) {
	entries, err := svc.DayEntries(ctx, owner, axes, DayLabel(now))
	if err != nil {
		return Lecture{}, false, err
	}
	SortByStartTime(entries)
	l, ok := FindNext(entries, MinutesSinceMidnight(now))
	return l, ok, nil
}
