package sync

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/notelance/notelance/internal/client/remote"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/metadata"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/notelance/notelance/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type testEnv struct {
	db         *sql.DB
	categories categories.Repository
	notes      notes.Repository
	meta       metadata.Repository
	mapper     *Mapper
	log        logging.Logger
}

func setupEnv(t *testing.T) *testEnv {
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
CREATE UNIQUE INDEX idx_categories_remote_id ON categories (remote_id) WHERE remote_id IS NOT NULL;
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
CREATE UNIQUE INDEX idx_notes_remote_id ON notes (remote_id) WHERE remote_id IS NOT NULL;
CREATE TABLE metadata (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	catRepo := categories.NewSQLiteRepository(db)
	noteRepo := notes.NewSQLiteRepository(db)

	return &testEnv{
		db:         db,
		categories: catRepo,
		notes:      noteRepo,
		meta:       metadata.NewSQLiteRepository(db),
		mapper:     NewMapper(catRepo, noteRepo),
		log:        logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

// fakeRemote is a scriptable remote.Client. Unset hooks return empty
// successful responses.
type fakeRemote struct {
	syncCategoriesFn  func(ctx context.Context, batch []remote.CategoryPush) (*remote.CategorySyncResponse, error)
	fetchCategoriesFn func(ctx context.Context) ([]remote.RemoteCategory, error)
	syncNotesFn       func(ctx context.Context, batch []remote.NotePush) (*remote.NoteSyncResponse, error)
	fetchNotesFn      func(ctx context.Context, excepts []int64) ([]remote.RemoteNote, error)

	categoryBatches [][]remote.CategoryPush
	noteBatches     [][]remote.NotePush
	noteExcepts     [][]int64
}

func (f *fakeRemote) SyncCategories(ctx context.Context, batch []remote.CategoryPush) (*remote.CategorySyncResponse, error) {
	f.categoryBatches = append(f.categoryBatches, batch)
	if f.syncCategoriesFn != nil {
		return f.syncCategoriesFn(ctx, batch)
	}
	return &remote.CategorySyncResponse{State: remote.StateCategoriesSynced}, nil
}

func (f *fakeRemote) FetchCategories(ctx context.Context) ([]remote.RemoteCategory, error) {
	if f.fetchCategoriesFn != nil {
		return f.fetchCategoriesFn(ctx)
	}
	return nil, nil
}

func (f *fakeRemote) SyncNotes(ctx context.Context, batch []remote.NotePush) (*remote.NoteSyncResponse, error) {
	f.noteBatches = append(f.noteBatches, batch)
	if f.syncNotesFn != nil {
		return f.syncNotesFn(ctx, batch)
	}
	return &remote.NoteSyncResponse{State: remote.StateNotesSynced}, nil
}

func (f *fakeRemote) FetchNotes(ctx context.Context, excepts []int64) ([]remote.RemoteNote, error) {
	f.noteExcepts = append(f.noteExcepts, excepts)
	if f.fetchNotesFn != nil {
		return f.fetchNotesFn(ctx, excepts)
	}
	return nil, nil
}

// unchangedCategories acknowledges every pushed row without changes.
func unchangedCategories(batch []remote.CategoryPush) *remote.CategorySyncResponse {
	resp := &remote.CategorySyncResponse{State: remote.StateCategoriesSynced}
	for _, c := range batch {
		resp.Categories = append(resp.Categories, remote.CategoryOutcome{
			State:    RowStateUnchanged.String(),
			ClientID: c.ClientID,
		})
	}
	return resp
}

// unchangedNotes acknowledges every pushed row without changes.
func unchangedNotes(batch []remote.NotePush) *remote.NoteSyncResponse {
	resp := &remote.NoteSyncResponse{State: remote.StateNotesSynced}
	for _, n := range batch {
		resp.Notes = append(resp.Notes, remote.NoteOutcome{
			State:    RowStateUnchanged.String(),
			ClientID: n.ClientID,
		})
	}
	return resp
}
