package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

const sqlite3Driver = "sqlite3"

const schema = `CREATE TABLE IF NOT EXISTS projects (
	name TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLiteStore keeps projects in a SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	url := "file:" + path + "?_journal=WAL&_busy_timeout=50"
	db, err := sqlx.Open(sqlite3Driver, url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps in-memory databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	log.Infof("Opened project store %s", path)

	s := new(SQLiteStore)
	s.db = db
	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load implements Service.
func (s *SQLiteStore) Load(ctx context.Context, name string) ([]byte, error) {
	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	var data []byte
	err := s.db.GetContext(ctx, &data, `SELECT data FROM projects WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", name, err)
	}
	return data, nil
}

// Save implements Service.
func (s *SQLiteStore) Save(ctx context.Context, name string, data []byte) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if len(data) == 0 {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name); err != nil {
			return fmt.Errorf("deleting %q: %w", name, err)
		}
		log.Debugf("Deleted project %s", name)
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving %q: %w", name, err)
	}
	log.Debugf("Saved project %s (%d bytes)", name, len(data))
	return nil
}

// List implements Service.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := s.db.SelectContext(ctx, &names, `SELECT name FROM projects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return names, nil
}
