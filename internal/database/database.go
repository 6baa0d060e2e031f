package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type DB struct {
	*sqlx.DB
}

// New opens the SQLite database at the given path and makes sure the schema
// exists.
func New(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		databaseURL = "voicelab.db"
	}

	db, err := sqlx.Connect("sqlite3", databaseURL+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logrus.WithField("path", databaseURL).Info("database connection established")
	return dbWrapper, nil
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	recordsTable := `
	CREATE TABLE IF NOT EXISTS tts_records (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		original_text TEXT NOT NULL,
		ssml_text TEXT,
		language TEXT NOT NULL,
		voice_id TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT 'basic',
		speed REAL NOT NULL DEFAULT 1.0,
		pitch REAL NOT NULL DEFAULT 0,
		audio_file_path TEXT NOT NULL,
		duration REAL NOT NULL DEFAULT 0,
		folder TEXT,
		provider TEXT NOT NULL DEFAULT 'google',
		rating INTEGER NOT NULL DEFAULT 0,
		is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	settingsTable := `
	CREATE TABLE IF NOT EXISTS user_settings (
		id INTEGER PRIMARY KEY,
		google_api_key TEXT,
		microsoft_api_key TEXT,
		gemini_api_key TEXT,
		default_language TEXT NOT NULL DEFAULT 'cs-CZ',
		default_voice_id TEXT NOT NULL DEFAULT 'cs-CZ-Wavenet-A',
		default_speed REAL NOT NULL DEFAULT 1.0,
		default_pitch REAL NOT NULL DEFAULT 0,
		default_mode TEXT NOT NULL DEFAULT 'basic',
		tts_provider TEXT NOT NULL DEFAULT 'google',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_records_created_at ON tts_records(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_records_folder ON tts_records(folder);`,
		`CREATE INDEX IF NOT EXISTS idx_records_favorite ON tts_records(is_favorite);`,
		`CREATE INDEX IF NOT EXISTS idx_records_language ON tts_records(language);`,
	}

	for _, query := range []string{recordsTable, settingsTable} {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
