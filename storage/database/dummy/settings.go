package dummydb

import (
	"context"

	"github.com/trezcool/masomo-timetable/core/catalog"
)

type settingsStore struct {
	db *settingsTable
}

var _ catalog.Store = (*settingsStore)(nil) // interface compliance check

func NewSettingsStore(db *DB) catalog.Store {
	return &settingsStore{db: db.settings}
}

func (store *settingsStore) Get(_ context.Context, key string) ([]string, error) {
	store.db.RLock()
	defer store.db.RUnlock()

	values, ok := store.db.table[key]
	if !ok {
		return nil, catalog.ErrKeyNotFound
	}
	return append([]string{}, values...), nil
}

func (store *settingsStore) Set(_ context.Context, key string, values []string) error {
	store.db.Lock()
	defer store.db.Unlock()

	store.db.table[key] = append([]string{}, values...)
	return nil
}
