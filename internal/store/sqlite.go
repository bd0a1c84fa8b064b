package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/investor-match/internal/profile"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	summary    TEXT NOT NULL,
	full_text  TEXT NOT NULL,
	metadata   TEXT NOT NULL,
	indexed_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveProfiles replaces the stored index with the given profiles in one
// transaction. The index is always a full rebuild, never incremental.
func (s *SQLiteStore) SaveProfiles(ctx context.Context, profiles []profile.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles`); err != nil {
		return eris.Wrap(err, "sqlite: clear profiles")
	}

	now := time.Now().UTC()
	for _, p := range profiles {
		meta, err := json.Marshal(p.Meta)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal metadata for profile %s", p.ID)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (id, summary, full_text, metadata, indexed_at) VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.Summary(), p.Text, string(meta), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert profile %s", p.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

// LoadProfiles returns the stored profiles in master-row order.
func (s *SQLiteStore) LoadProfiles(ctx context.Context) ([]profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_text, metadata FROM profiles ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query profiles")
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var p profile.Profile
		var meta string
		if err := rows.Scan(&p.ID, &p.Text, &meta); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan profile")
		}
		p.Meta = profile.NewMetadata()
		if err := json.Unmarshal([]byte(meta), p.Meta); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal metadata for profile %s", p.ID)
		}
		profiles = append(profiles, p)
	}
	return profiles, eris.Wrap(rows.Err(), "sqlite: iterate profiles")
}

// Count returns the number of stored profiles.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count profiles")
}
