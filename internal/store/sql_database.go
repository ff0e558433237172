package store

import (
	"database/sql"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/migrations"
)

// DB wraps the raw database handle together with the structured logger so
// repositories share one connection pool.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies all pending embedded schema migrations to the local
// database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
