package db

import (
	"context"
	"database/sql"
	"fmt"
	"go-ledger-api/config"
	"go-ledger-api/logger"
	"time"

	_ "github.com/lib/pq"
)

// DSN builds the lib/pq connection string. The password is omitted when
// redact is set so the result can be logged.
func DSN(cfg config.Config, redact bool) string {
	d := cfg.Database
	if redact {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Name, d.SSLMode)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func Connect(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	logger.Log.WithField("connection", DSN(cfg, true)).Info("Attempting to connect to the database")

	db, err := sql.Open("postgres", DSN(cfg, false))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return db, nil
}
