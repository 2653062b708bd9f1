// Package storage opens the local SQLite database, applies the embedded
// migrations, and wires up the repository set.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/notelance/notelance/internal/client/migrations"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/metadata"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles every repository bound to one database handle. DB is
// exposed for callers that need transaction scope (dbx.WithTx).
type Repositories struct {
	Categories categories.Repository
	Notes      notes.Repository
	Metadata   metadata.Repository
	DB         *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// foreignKeysDSN appends the foreign_keys pragma to the DSN. The driver
// applies DSN pragmas on every connection it opens; a plain PRAGMA statement
// would only configure whichever pooled connection happened to execute it.
func foreignKeysDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", foreignKeysDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Repositories{
		Categories: categories.NewSQLiteRepository(db),
		Notes:      notes.NewSQLiteRepository(db),
		Metadata:   metadata.NewSQLiteRepository(db),
		DB:         db,
	}, nil
}
