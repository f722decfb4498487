package timetable

import (
	"sort"
	"time"
)

const clockLayout = "15:04"

// ParseClock converts an "HH:MM" time to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesSinceMidnight returns the wall clock minutes of t in its own location.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DayLabel returns the day axis label of t, e.g. "Monday".
func DayLabel(t time.Time) string {
	return t.Weekday().String()
}

// StartMinutes returns the lecture start in minutes since midnight, or -1 if StartTime is malformed.
func (l Lecture) StartMinutes() int {
	m, err := ParseClock(l.StartTime)
	if err != nil {
		return -1
	}
	return m
}

// SortByStartTime sorts lectures in place by start time, keeping the order of equal starts.
func SortByStartTime(lectures []Lecture) {
	sort.SliceStable(lectures, func(i, j int) bool {
		return lectures[i].StartMinutes() < lectures[j].StartMinutes()
	})
}

// FindNext returns the first lecture starting strictly after nowMinutes.
// lectures must already be sorted by start time (see SortByStartTime);
// the list of a day is short, so it is scanned linearly.
func FindNext(lectures []Lecture, nowMinutes int) (Lecture, bool) {
	for _, l := range lectures {
		if l.StartMinutes() > nowMinutes {
			return l, true
		}
	}
	return Lecture{}, false
}
