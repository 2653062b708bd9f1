package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/notelance/notelance/internal/client/models"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/notelance/notelance/internal/common"
)

// Mapper translates between local ids and remote ids for categories and
// notes. It is the single point of truth for cross-id-space resolution, and
// the only component allowed to bind a remote id to a local row. A remote id
// binds to at most one local row; Bind* enforces this.
type Mapper struct {
	categories categories.Repository
	notes      notes.Repository
}

func NewMapper(categoryRepo categories.Repository, noteRepo notes.Repository) *Mapper {
	return &Mapper{categories: categoryRepo, notes: noteRepo}
}

// CategoryByRemoteID returns the local category bound to remoteID, or nil
// when the remote id is unknown locally.
func (m *Mapper) CategoryByRemoteID(ctx context.Context, remoteID int64) (*models.Category, error) {
	c, err := m.categories.GetByRemoteID(ctx, remoteID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category by remote id %d: %w", remoteID, err)
	}
	return c, nil
}

// NoteByRemoteID returns the local note bound to remoteID, or nil when the
// remote id is unknown locally.
func (m *Mapper) NoteByRemoteID(ctx context.Context, remoteID int64) (*models.Note, error) {
	n, err := m.notes.GetByRemoteID(ctx, remoteID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve note by remote id %d: %w", remoteID, err)
	}
	return n, nil
}

// RemoteCategoryID translates a local category id to its remote id for the
// wire. A category without a binding (or a soft-deleted one) maps to nil;
// the note carrying it is retried on a later run.
func (m *Mapper) RemoteCategoryID(ctx context.Context, localID int64) (*int64, error) {
	c, err := m.categories.GetByID(ctx, localID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %d: %w", localID, err)
	}
	return c.RemoteID, nil
}

// BindCategory records remoteID as the remote identity of the local category.
// Binding is idempotent; binding a remote id already owned by a different
// local row is an integrity violation. The category's updated_at is pinned to
// its current value so the binding is not mistaken for a local edit on the
// next run.
func (m *Mapper) BindCategory(ctx context.Context, category *models.Category, remoteID int64) error {
	existing, err := m.CategoryByRemoteID(ctx, remoteID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.ID == category.ID {
			return nil
		}
		return fmt.Errorf("%w: remote category %d is bound to local %d", common.ErrorRemoteIDConflict, remoteID, existing.ID)
	}

	updatedAt := category.UpdatedAt
	if _, err := m.categories.Update(ctx, category.ID, categories.UpdateParams{RemoteID: &remoteID, UpdatedAt: &updatedAt}); err != nil {
		return fmt.Errorf("failed to bind category %d: %w", category.ID, err)
	}
	return nil
}

// BindNote records remoteID as the remote identity of the local note.
// The note's updated_at is pinned to its current value so the binding is not
// mistaken for a local edit on the next run.
func (m *Mapper) BindNote(ctx context.Context, note *models.Note, remoteID int64) error {
	existing, err := m.NoteByRemoteID(ctx, remoteID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.ID == note.ID {
			return nil
		}
		return fmt.Errorf("%w: remote note %d is bound to local %d", common.ErrorRemoteIDConflict, remoteID, existing.ID)
	}

	updatedAt := note.UpdatedAt
	if _, err := m.notes.Update(ctx, note.ID, notes.UpdateParams{RemoteID: &remoteID, UpdatedAt: &updatedAt}); err != nil {
		return fmt.Errorf("failed to bind note %d: %w", note.ID, err)
	}
	return nil
}
