package categories

import (
	"context"
	"time"

	"github.com/notelance/notelance/internal/client/models"
)

// CreateParams holds the fields for a new category. OrderIndex nil means
// "append after the current maximum". RemoteID is set only when the row is
// materialized from the remote service.
type CreateParams struct {
	Name       string
	OrderIndex *int
	RemoteID   *int64
}

// UpdateParams is a partial update; nil fields are left untouched, except
// that updated_at is always bumped unless an explicit UpdatedAt is supplied.
// At least one field must be set.
type UpdateParams struct {
	Name       *string
	OrderIndex *int
	RemoteID   *int64
	IsDeleted  *bool
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
}

// Repository describes CRUD and query operations for Category objects.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// List returns active categories ordered by order_index.
	List(ctx context.Context) ([]models.Category, error)

	// ListWithTrashed returns every category row, tombstones included.
	ListWithTrashed(ctx context.Context) ([]models.Category, error)

	// GetByID returns an active category by local id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Category, error)

	// GetByName returns an active category by case-insensitive name.
	GetByName(ctx context.Context, name string) (*models.Category, error)

	// GetByRemoteID returns the category bound to the given remote id,
	// tombstones included, or common.ErrorNotFound.
	GetByRemoteID(ctx context.Context, remoteID int64) (*models.Category, error)

	// Create inserts a new category and returns it with its assigned id.
	Create(ctx context.Context, params CreateParams) (*models.Category, error)

	// Update applies a partial update and returns the stored row.
	// An empty UpdateParams yields common.ErrorNoFieldsToUpdate.
	Update(ctx context.Context, id int64, params UpdateParams) (*models.Category, error)

	// SoftDelete detaches referencing notes and marks the category deleted.
	SoftDelete(ctx context.Context, id int64) error

	// HardDelete detaches referencing notes and removes the row.
	HardDelete(ctx context.Context, id int64) error

	// RenumberOrder rewrites order_index to the position of each id in the
	// supplied slice (0..n-1).
	RenumberOrder(ctx context.Context, orderedIDs []int64) error

	// NotesCount returns the number of active notes in the category.
	NotesCount(ctx context.Context, id int64) (int, error)
}
