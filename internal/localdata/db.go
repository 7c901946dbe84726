// Package localdata manages the client-local SQLite database: last-known
// record snapshots for offline viewing, and small auth metadata that lets a
// session resume without re-entering credentials.
package localdata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/podlift/podlift/internal/localdata/migrations"
)

// Repositories groups the repositories backed by one local database.
type Repositories struct {
	Snapshots SnapshotRepository
	Metadata  MetadataRepository
	DB        *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn, applies
// migrations, and returns the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Snapshots: NewSQLiteSnapshotRepository(db),
		Metadata:  NewSQLiteMetadataRepository(db),
		DB:        db,
	}, nil
}
