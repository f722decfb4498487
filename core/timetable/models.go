package timetable

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-timetable/core"
	"github.com/trezcool/masomo-timetable/core/catalog"
)

// Owner kinds
const (
	OwnerClass   OwnerKind = "class"
	OwnerTeacher OwnerKind = "teacher"
)

type OwnerKind string

func (k OwnerKind) Valid() bool {
	return k == OwnerClass || k == OwnerTeacher
}

// Owner is the class or teacher a Grid belongs to.
type Owner struct {
	Kind OwnerKind `json:"kind"`
	ID   string    `json:"id"`
}

func ParseOwner(kind, id string) (Owner, error) {
	owner := Owner{Kind: OwnerKind(core.CleanString(kind, true /* lower */)), ID: core.CleanString(id)}
	if !owner.Kind.Valid() || owner.ID == "" {
		return Owner{}, ErrInvalidOwner
	}
	return owner, nil
}

func (o Owner) String() string {
	return string(o.Kind) + ":" + o.ID
}

// Lecture is one scheduled occurrence in a timetable.
// StartTime is "HH:MM" and is trusted to lie within Slot.
type Lecture struct {
	ID          string      `json:"id" db:"id"`
	Day         string      `json:"day" db:"day"`
	Slot        string      `json:"slot" db:"slot"`
	Subject     string      `json:"subject" db:"subject"`
	Room        string      `json:"room" db:"room"`
	TeacherName string      `json:"teacher_name" db:"teacher_name"`
	ClassRef    string      `json:"class_ref" db:"class_ref"`
	StartTime   string      `json:"start_time" db:"start_time"`
	Notes       null.String `json:"notes" db:"notes"`
}

func (l Lecture) Cell() Cell {
	return Cell{Day: l.Day, Slot: l.Slot}
}

// NewLecture contains the information needed to create or edit a Lecture.
// An empty ID creates a new Lecture.
type NewLecture struct {
	ID          string `json:"id"`
	Day         string `json:"day" validate:"required,notblank"`
	Slot        string `json:"slot" validate:"required,notblank"`
	Subject     string `json:"subject" validate:"required,notblank"`
	Room        string `json:"room"`
	TeacherName string `json:"teacher_name"`
	ClassRef    string `json:"class_ref"`
	StartTime   string `json:"start_time" validate:"omitempty,clock"`
	Notes       string `json:"notes"`
}

func (nl *NewLecture) Validate(validate *validator.Validate) error {
	nl.ID = core.CleanString(nl.ID)
	nl.Day = core.CleanString(nl.Day)
	nl.Slot = core.CleanString(nl.Slot)
	nl.Subject = core.CleanString(nl.Subject)
	nl.Room = core.CleanString(nl.Room)
	nl.TeacherName = core.CleanString(nl.TeacherName)
	nl.ClassRef = core.CleanString(nl.ClassRef)
	nl.StartTime = core.CleanString(nl.StartTime)
	nl.Notes = core.CleanString(nl.Notes)
	return validate.Struct(nl)
}

// lecture builds the Lecture; a missing start time defaults to the slot's start.
func (nl NewLecture) lecture() Lecture {
	start := nl.StartTime
	if start == "" {
		start = catalog.SlotStart(nl.Slot)
	}
	return Lecture{
		ID:          nl.ID,
		Day:         nl.Day,
		Slot:        nl.Slot,
		Subject:     nl.Subject,
		Room:        nl.Room,
		TeacherName: nl.TeacherName,
		ClassRef:    nl.ClassRef,
		StartTime:   start,
		Notes:       null.NewString(nl.Notes, nl.Notes != ""),
	}
}
