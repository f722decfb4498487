package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-timetable/core/catalog"
)

type settingsStore struct {
	db *sqlx.DB
}

var _ catalog.Store = (*settingsStore)(nil) // interface compliance check

// NewSettingsStore returns a catalog.Store on the timetable_settings table.
// Each key holds a JSON array of labels.
func NewSettingsStore(db *sqlx.DB) catalog.Store {
	return &settingsStore{db: db}
}

func (store *settingsStore) Get(ctx context.Context, key string) ([]string, error) {
	var raw []byte
	err := store.db.GetContext(ctx, &raw, `SELECT value FROM timetable_settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrKeyNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "selecting setting %s", key)
	}

	values := make([]string, 0)
	if err = json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrapf(err, "decoding setting %s", key)
	}
	return values, nil
}

func (store *settingsStore) Set(ctx context.Context, key string, values []string) error {
	if values == nil {
		values = make([]string, 0)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return errors.Wrapf(err, "encoding setting %s", key)
	}

	const q = `
		INSERT INTO timetable_settings (key, value, updated_at)
		VALUES ($1, $2, NOW() AT TIME ZONE 'utc')
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err = store.db.ExecContext(ctx, q, key, string(raw)); err != nil {
		return errors.Wrapf(err, "saving setting %s", key)
	}
	return nil
}
