// Package store persists profiles and moments in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL so the scheduler and the ingestion loop can share the file.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY,
		language_code TEXT NOT NULL DEFAULT '',
		formal_address INTEGER NOT NULL DEFAULT 0,
		notifications_enabled INTEGER NOT NULL DEFAULT 1,
		active_hours_start INTEGER NOT NULL DEFAULT 9,
		active_hours_end INTEGER NOT NULL DEFAULT 21,
		notification_interval_hours INTEGER NOT NULL DEFAULT 3,
		last_active_at INTEGER NOT NULL DEFAULT 0,
		last_reminder_at INTEGER NOT NULL DEFAULT 0,
		onboarding_completed INTEGER NOT NULL DEFAULT 0,
		referral_source TEXT NOT NULL DEFAULT '',
		questions_sent INTEGER NOT NULL DEFAULT 0,
		questions_answered INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS moments (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		source TEXT NOT NULL,
		embedding BLOB,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_moments_user_created ON moments(user_id, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
