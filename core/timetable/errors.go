package timetable

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("lecture not found")
	ErrInvalidOwner = errors.New("invalid timetable owner")
	ErrMissingID    = errors.New("lecture has no ID")
)

// SlotConflictError reports an attempt to put a lecture in a cell held by another lecture.
type SlotConflictError struct {
	Day        string
	Slot       string
	OccupantID string
	LectureID  string
}

func (err *SlotConflictError) Error() string {
	return fmt.Sprintf("%s %s is already taken by lecture %s", err.Day, err.Slot, err.OccupantID)
}
