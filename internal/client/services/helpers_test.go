package services

import (
	"database/sql"
	"testing"

	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) (*sql.DB, categories.Repository, notes.Repository) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE categories (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  remote_id INTEGER NULL,
  name TEXT NOT NULL,
  order_index INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  is_deleted INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE notes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  remote_id INTEGER NULL,
  title TEXT NOT NULL,
  content TEXT NOT NULL DEFAULT '',
  category_id INTEGER NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  is_deleted INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db, categories.NewSQLiteRepository(db), notes.NewSQLiteRepository(db)
}
