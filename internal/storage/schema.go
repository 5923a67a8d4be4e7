package storage

import (
	"context"
	"fmt"
)

// schema[i] brings the database from user_version i to i+1.
var schema = []string{
	`
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL CHECK (trim(title) <> ''),
	completed INTEGER NOT NULL DEFAULT 0,
	date TEXT NOT NULL,
	start_time TEXT DEFAULT NULL,
	details TEXT DEFAULT NULL,
	goal_id TEXT DEFAULT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS tasks_by_date ON tasks (date);
CREATE INDEX IF NOT EXISTS tasks_by_goal ON tasks (goal_id) WHERE goal_id IS NOT NULL;
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL CHECK (trim(title) <> ''),
	type TEXT NOT NULL CHECK (type IN ('checkin', 'custom')),
	target_count INTEGER NOT NULL CHECK (target_count > 0),
	current_count INTEGER NOT NULL DEFAULT 0 CHECK (current_count >= 0),
	deadline TEXT DEFAULT NULL,
	color TEXT NOT NULL DEFAULT '',
	last_update TEXT DEFAULT NULL
);`,
}

func SchemaVersion() int {
	return len(schema)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&version); err != nil {
		return err
	}
	if version > len(schema) {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, len(schema))
	}
	for v := version; v < len(schema); v++ {
		err := s.Update(ctx, func(tx *Tx) error {
			if _, err := tx.tx.ExecContext(ctx, schema[v]); err != nil {
				return err
			}
			// PRAGMA does not accept bound parameters.
			_, err := tx.tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d;`, v+1))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply schema version %d: %w", v+1, err)
		}
	}
	return nil
}
