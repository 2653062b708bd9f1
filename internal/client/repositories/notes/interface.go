// Package notes provides the client-side persistence layer for notes,
// following the same Repository/SQLite split as the categories package.
package notes

import (
	"context"
	"time"

	"github.com/notelance/notelance/internal/client/models"
)

// CreateParams holds the fields for a new note. CategoryID nil means
// uncategorized; RemoteID is set only when the row is materialized from the
// remote service.
type CreateParams struct {
	Title      string
	Content    string
	CategoryID *int64
	RemoteID   *int64
}

// UpdateParams is a partial update; nil fields are left untouched, except
// that updated_at is always bumped unless an explicit UpdatedAt is supplied.
// CategoryID distinguishes "leave alone" (SetCategory false) from "set to
// NULL" (SetCategory true, CategoryID nil).
type UpdateParams struct {
	Title       *string
	Content     *string
	SetCategory bool
	CategoryID  *int64
	RemoteID    *int64
	IsDeleted   *bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// Repository describes CRUD and query operations for Note objects.
type Repository interface {
	// List returns active notes, most recently updated first.
	List(ctx context.Context) ([]models.Note, error)

	// ListWithTrashed returns every note row, tombstones included.
	ListWithTrashed(ctx context.Context) ([]models.Note, error)

	// ListByCategory returns active notes in the category; a nil category
	// lists every active note.
	ListByCategory(ctx context.Context, categoryID *int64) ([]models.Note, error)

	// ListUncategorized returns active notes with no category.
	ListUncategorized(ctx context.Context) ([]models.Note, error)

	// Search returns active notes whose title or content contains query.
	Search(ctx context.Context, query string) ([]models.Note, error)

	// GetByID returns an active note by local id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Note, error)

	// GetByRemoteID returns the note bound to the given remote id,
	// tombstones included, or common.ErrorNotFound.
	GetByRemoteID(ctx context.Context, remoteID int64) (*models.Note, error)

	// Create inserts a new note and returns it with its assigned id.
	Create(ctx context.Context, params CreateParams) (*models.Note, error)

	// Update applies a partial update and returns the stored row.
	// An empty UpdateParams yields common.ErrorNoFieldsToUpdate.
	Update(ctx context.Context, id int64, params UpdateParams) (*models.Note, error)

	// SoftDelete marks the note deleted, keeping the row for sync.
	SoftDelete(ctx context.Context, id int64) error

	// HardDelete removes the row.
	HardDelete(ctx context.Context, id int64) error

	// CountByCategory counts active notes in a category (nil counts all).
	CountByCategory(ctx context.Context, categoryID *int64) (int, error)
}
