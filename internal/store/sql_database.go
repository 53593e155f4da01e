package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/migrations"
)

// DB wraps *sql.DB together with the dialect-specific pieces the
// repositories need: the squirrel placeholder format and the driver error
// classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by the DSN scheme:
// "postgres://" and "postgresql://" use pgx, everything else is treated as a
// SQLite file DSN.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case cfg.DSN == "":
		return nil, ErrUnsupportedDSN
	case isPostgresDSN(cfg.DSN):
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.dialect); err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Str("dialect", db.dialect).Msg("migration failed")
		return fmt.Errorf("error migrating %s database: %w", db.dialect, err)
	}

	db.logger.Info().Str("func", "*DB.Migrate").Str("dialect", db.dialect).Msg("database migrated")
	return nil
}

// Dialect returns migrations.DialectPostgres or migrations.DialectSQLite.
func (db *DB) Dialect() string {
	return db.dialect
}
