package catalog

import (
	"slices"
	"sort"
	"strings"
)

const (
	// DaysKey and SlotsKey are the Store keys holding both axes.
	DaysKey  = "timetable.days"
	SlotsKey = "timetable.slots"

	slotSeparator = " - "
)

// Catalog owns the two axes of a timetable grid: the ordered day labels
// and the time slot labels. Labels are unique per axis.
//
// The zero value is an empty, usable catalog.
// A Catalog is not safe for concurrent mutation.
type Catalog struct {
	days  []string
	slots []string
}

// New builds a Catalog from the given axes, dropping duplicate labels.
func New(days, slots []string) Catalog {
	var cat Catalog
	for _, d := range days {
		_ = cat.AddDay(d)
	}
	for _, s := range slots {
		_ = cat.AddSlot(s)
	}
	return cat
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	return Catalog{
		days:  slices.Clone(c.days),
		slots: slices.Clone(c.slots),
	}
}

func (c Catalog) IsEmpty() bool {
	return len(c.days) == 0 && len(c.slots) == 0
}

// Days returns the day axis in insertion order.
func (c Catalog) Days() []string {
	return slices.Clone(c.days)
}

// Slots returns the time axis sorted by slot start time.
func (c Catalog) Slots() []string {
	slots := slices.Clone(c.slots)
	sort.SliceStable(slots, func(i, j int) bool { return SlotStart(slots[i]) < SlotStart(slots[j]) })
	return slots
}

func (c Catalog) HasDay(label string) bool {
	return slices.Contains(c.days, label)
}

func (c Catalog) HasSlot(label string) bool {
	return slices.Contains(c.slots, label)
}

// AddDay appends label to the day axis.
// Adding a label already on the axis is a no-op reported as a *DuplicateAxisLabelError.
func (c *Catalog) AddDay(label string) error {
	if c.HasDay(label) {
		return &DuplicateAxisLabelError{Axis: AxisDay, Label: label}
	}
	c.days = append(c.days, label)
	return nil
}

// RemoveDay removes label from the day axis and reports whether it was there.
// Lectures scheduled on that day are left alone.
func (c *Catalog) RemoveDay(label string) bool {
	idx := slices.Index(c.days, label)
	if idx < 0 {
		return false
	}
	c.days = slices.Delete(c.days, idx, idx+1)
	return true
}

// AddSlot adds label to the time axis. Insertion order is kept; Slots sorts on read.
func (c *Catalog) AddSlot(label string) error {
	if c.HasSlot(label) {
		return &DuplicateAxisLabelError{Axis: AxisSlot, Label: label}
	}
	c.slots = append(c.slots, label)
	return nil
}

// RemoveSlot removes label from the time axis and reports whether it was there.
func (c *Catalog) RemoveSlot(label string) bool {
	idx := slices.Index(c.slots, label)
	if idx < 0 {
		return false
	}
	c.slots = slices.Delete(c.slots, idx, idx+1)
	return true
}

// SynthesizeSlot builds the "<start> - <end>" label of a time slot.
// Both ends are required. start is not checked to be before end,
// so a slot wrapping around midnight is accepted.
func SynthesizeSlot(start, end string) (string, error) {
	if start == "" || end == "" {
		return "", &InvalidRangeError{Start: start, End: end}
	}
	return start + slotSeparator + end, nil
}

// SlotStart returns the start time substring of a slot label,
// or the whole label if it has no separator.
func SlotStart(label string) string {
	if idx := strings.Index(label, slotSeparator); idx >= 0 {
		return label[:idx]
	}
	return label
}

// SlotEnd returns the end time substring of a slot label, or "" if it has no separator.
func SlotEnd(label string) string {
	if idx := strings.Index(label, slotSeparator); idx >= 0 {
		return label[idx+len(slotSeparator):]
	}
	return ""
}
