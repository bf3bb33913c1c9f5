package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/media-catalog/internal/config"
)

// Open connects to MySQL and verifies the connection.  When cfg.DatabaseURL
// is set it is used verbatim as the DSN; otherwise the DSN is assembled from
// the discrete DB_* settings.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		dsn = fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
