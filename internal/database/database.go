// Package database opens the SQLite database Fyyur stores its data in
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Just needed for the sqlite driver
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/migrate"
)

// InMemory is the file name to pass to Open for a database that only lives as long as the connection
const InMemory = ":memory:"

// Open connects to the SQLite database inside the given file, enables foreign key checks and performs all pending
// migrations
func Open(fileName string, logger *logrus.Entry) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", fileName)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "Open: Failed to open database connection")
	}
	// SQLite allows only one writer at a time and every in-memory connection would see its own database
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Open: Database cannot be reached")
	}
	logger.WithField(log.FldFile, fileName).Info("Performing database migrations...")
	if err = migrate.ExecuteMigrationsOnDb(db, logger); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Open: Database migration has failed")
	}
	return db, nil
}
