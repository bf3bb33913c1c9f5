package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunMigrations creates the schema when it does not exist yet.  Statements
// are idempotent so running them on every startup is safe.
func RunMigrations(db *sql.DB) error {
	usersSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	entriesSQL := `
	CREATE TABLE IF NOT EXISTS entries (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(512) NOT NULL,
		type ENUM('Movie','TV Show') NOT NULL,
		director VARCHAR(255) NOT NULL DEFAULT '',
		budget VARCHAR(255) NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL DEFAULT '',
		duration VARCHAR(255) NOT NULL DEFAULT '',
		year VARCHAR(255) NOT NULL DEFAULT '',
		notes TEXT NOT NULL,
		poster_url MEDIUMTEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_entries_created_at (created_at, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, usersSQL); err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}
	if _, err := db.ExecContext(ctx, entriesSQL); err != nil {
		return fmt.Errorf("failed to run entries migration: %w", err)
	}
	return nil
}
