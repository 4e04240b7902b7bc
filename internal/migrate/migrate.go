// Package migrate handles SQL database migration for the internal Fyyur database
package migrate

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var migrations []dbMigration

type dbMigration struct {
	Version uint
	Queries []string
}

// Execute runs the current DB migration on the given database
func (mig *dbMigration) Execute(db *sqlx.DB, logger *logrus.Entry) error {
	// Check if the migration has already run
	query := `SELECT success FROM Migrations WHERE version = $1`
	var success = false
	err := db.QueryRow(query, mig.Version).Scan(&success)
	if err != nil && err != sql.ErrNoRows {
		logger.WithError(err).Error("Failed to fetch version information")
		return err
	}
	if success {
		return nil
	}
	// We need to execute this migration
	logger.Infof("Executing DB migration #%d", mig.Version)
	for i, query := range mig.Queries {
		logger.Debugf("Query %d of %d...", (i + 1), len(mig.Queries))
		if _, err := db.Exec(query); err != nil {
			logger.WithError(err).Errorf("Query #%d failed", (i + 1))
			db.Exec(`REPLACE INTO Migrations(version, success) VALUES($1, 0)`, mig.Version)
			return errors.Wrapf(err, "migration #%d, query #%d", mig.Version, i+1)
		}
	}
	// Queries executed successfully - save our status
	if _, err := db.Exec(`REPLACE INTO Migrations(version, success) VALUES($1, 1)`, mig.Version); err != nil {
		return errors.Wrapf(err, "failed to store status of migration #%d", mig.Version)
	}
	return nil
}

// ExecuteMigrationsOnDb executes the database migrations on the given database instance
func ExecuteMigrationsOnDb(db *sqlx.DB, logger *logrus.Entry) error {
	// Create the migrations table if it does not exist, yet
	query := `CREATE TABLE IF NOT EXISTS Migrations (
                version   INTEGER NOT NULL,
                success   INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY(version)
            )`
	if _, err := db.Exec(query); err != nil {
		logger.WithError(err).Error("Failed to create migrations table")
		return err
	}
	for _, mig := range migrations {
		if err := mig.Execute(db, logger); err != nil {
			logger.WithError(err).Errorf("Failed to execute migration #%d", mig.Version)
			return err
		}
	}
	return nil
}

// For now, the migrations are part of the package...
func init() {
	migrations = []dbMigration{
		{
			Version: 1,
			Queries: []string{
				`CREATE TABLE "Venues" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR NOT NULL CHECK (name <> ''),
                    city VARCHAR(120) NOT NULL CHECK (city <> ''),
                    state VARCHAR(120),
                    address VARCHAR(120) NOT NULL CHECK (address <> ''),
                    phone VARCHAR(120) NOT NULL CHECK (phone <> ''),
                    imageLink VARCHAR(500),
                    facebookLink VARCHAR(120),
                    websiteLink VARCHAR(120),
                    seekingTalent INTEGER NOT NULL DEFAULT 0,
                    seekingDescription VARCHAR,
                    genres VARCHAR NOT NULL DEFAULT '[]',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Artists" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR NOT NULL CHECK (name <> ''),
                    city VARCHAR(120),
                    state VARCHAR(120),
                    phone VARCHAR(120) NOT NULL CHECK (phone <> ''),
                    imageLink VARCHAR(500),
                    facebookLink VARCHAR(120),
                    websiteLink VARCHAR(120),
                    seekingVenue INTEGER NOT NULL DEFAULT 0,
                    seekingDescription VARCHAR,
                    genres VARCHAR NOT NULL DEFAULT '[]',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Shows" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    artistId INTEGER NOT NULL REFERENCES Artists(id),
                    venueId INTEGER NOT NULL REFERENCES Venues(id),
                    startTime VARCHAR(19) NOT NULL CHECK (startTime <> '')
                );`,
			},
		},
		{
			Version: 2,
			Queries: []string{
				`CREATE INDEX idx_show_venue ON Shows (venueId ASC);`,
				`CREATE INDEX idx_show_artist ON Shows (artistId ASC);`,
				`CREATE INDEX idx_venue_location ON Venues (city ASC, state ASC);`,
			},
		},
	}
}
