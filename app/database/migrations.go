package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet. Safe to run
// on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		`CREATE TABLE IF NOT EXISTS papers (
			id SERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			author_number INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL DEFAULT '',
			date_submitted TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			date_extended TIMESTAMPTZ,
			abstract TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			sources TEXT NOT NULL DEFAULT '',
			volunteer TEXT NOT NULL DEFAULT '',
			discussed BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_date_submitted ON papers(date_submitted)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
