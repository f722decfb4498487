package dummydb

import (
	"sync"

	"github.com/trezcool/masomo-timetable/core/timetable"
)

type (
	// DB is an in-memory database, safe for concurrent use.
	DB struct {
		settings *settingsTable
		lecture  *lectureTable
	}

	settingsTable struct {
		sync.RWMutex
		table map[string][]string
	}

	lectureTable struct {
		sync.RWMutex
		table map[timetable.Owner]map[string]*timetable.Lecture
	}
)

func Open() (*DB, error) {
	db := &DB{
		settings: &settingsTable{table: make(map[string][]string)},
		lecture:  &lectureTable{table: make(map[timetable.Owner]map[string]*timetable.Lecture)},
	}
	return db, nil
}
