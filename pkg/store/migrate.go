package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SchemaVersion is the latest schema version supported by the migrator.
const SchemaVersion = 1

// Migrate ensures the SQLite schema exists and is upgraded to SchemaVersion.
func Migrate(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`); err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			mood TEXT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			ai_title TEXT NOT NULL DEFAULT '',
			ai_summary TEXT NOT NULL DEFAULT '',
			is_synced INTEGER NOT NULL DEFAULT 0,
			source_inbox_item_id TEXT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries (created_at);`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id TEXT PRIMARY KEY,
			entry_id TEXT NOT NULL REFERENCES entries (id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			filename TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_entry ON attachments (entry_id);`,
		`CREATE TABLE IF NOT EXISTS inbox_items (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			transcription TEXT NOT NULL DEFAULT '',
			preview TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			is_processed INTEGER NOT NULL DEFAULT 0,
			is_archived INTEGER NOT NULL DEFAULT 0,
			processed_entry_id TEXT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS artworks (
			id TEXT PRIMARY KEY,
			entry_id TEXT NOT NULL,
			entry_title TEXT NOT NULL,
			entry_date TEXT NOT NULL,
			mood TEXT NULL,
			style TEXT NOT NULL,
			aspect_ratio TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: apply schema: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?);`, SchemaVersion); err != nil {
		return fmt.Errorf("migrate: record version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
