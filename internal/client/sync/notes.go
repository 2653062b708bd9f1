package sync

import (
	"context"
	"fmt"

	"github.com/notelance/notelance/internal/client/models"
	"github.com/notelance/notelance/internal/client/remote"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/notelance/notelance/internal/common"
	"github.com/notelance/notelance/internal/logging"
	"github.com/notelance/notelance/internal/timex"
)

// NoteReconciler implements the note push phase. Category references go out
// translated to remote ids; verdicts mirror the category table with one
// asymmetry: a note the remote no longer has IS hard-deleted locally.
// Failures in this phase are recoverable at the orchestrator.
type NoteReconciler struct {
	remote remote.Client
	notes  notes.Repository
	mapper *Mapper
	log    logging.Logger
}

func NewNoteReconciler(rc remote.Client, repo notes.Repository, mapper *Mapper, log logging.Logger) *NoteReconciler {
	return &NoteReconciler{remote: rc, notes: repo, mapper: mapper, log: log}
}

func (r *NoteReconciler) Push(ctx context.Context) error {
	rows, err := r.notes.ListWithTrashed(ctx)
	if err != nil {
		return fmt.Errorf("failed to list local notes: %w", err)
	}

	payload := make([]remote.NotePush, 0, len(rows))
	index := make(map[int64]models.Note, len(rows))
	for _, n := range rows {
		index[n.ID] = n

		// Unbound categories map to nil; the note is re-sent on a later
		// run once the category phase has bound them.
		var remoteCategoryID *int64
		if n.CategoryID != nil {
			remoteCategoryID, err = r.mapper.RemoteCategoryID(ctx, *n.CategoryID)
			if err != nil {
				return err
			}
		}

		payload = append(payload, remote.NotePush{
			ClientID:   n.ID,
			RemoteID:   n.RemoteID,
			Title:      n.Title,
			Content:    n.Content,
			CategoryID: remoteCategoryID,
			IsDeleted:  wireBool(n.IsDeleted),
			CreatedAt:  timex.FormatUTC(n.CreatedAt),
			UpdatedAt:  timex.FormatUTC(n.UpdatedAt),
		})
	}

	resp, err := r.remote.SyncNotes(ctx, payload)
	if err != nil {
		return fmt.Errorf("note sync request failed: %w", err)
	}

	switch resp.State {
	case remote.StateNotesSynced:
	case remote.StateNotesSyncFailed:
		return fmt.Errorf("%w: notes: %s", common.ErrorSyncFailed, resp.ErrorMessage)
	default:
		return fmt.Errorf("%w: unexpected note response state %q", common.ErrorSyncFailed, resp.State)
	}

	for _, outcome := range resp.Notes {
		local, ok := index[outcome.ClientID]
		if !ok {
			return fmt.Errorf("%w: note client_id %d", common.ErrorBatchMismatch, outcome.ClientID)
		}
		if err := r.apply(ctx, &local, outcome); err != nil {
			r.log.Error(ctx, "failed to apply note outcome",
				"note", local.Title, "state", outcome.State, "error", err.Error())
		}
	}

	return nil
}

func (r *NoteReconciler) apply(ctx context.Context, local *models.Note, outcome remote.NoteOutcome) error {
	switch ParseRowState(outcome.State) {
	case RowStateCreated:
		if outcome.RemoteID == nil {
			r.log.Error(ctx, "remote did not assign an id to new note",
				"note", local.Title, "message", outcome.Message)
			return nil
		}
		if err := r.mapper.BindNote(ctx, local, *outcome.RemoteID); err != nil {
			return err
		}
		r.log.Info(ctx, "bound note to remote id", "note", local.Title, "remote_id", *outcome.RemoteID)

	case RowStateRemoteNewer:
		updatedAt, err := timex.ParseUTC(outcome.UpdatedAt)
		if err != nil {
			return fmt.Errorf("invalid remote updated_at: %w", err)
		}

		// Re-resolve the remote category id back to a local id. This never
		// creates a category; unresolved means the note goes uncategorized.
		var categoryID *int64
		if outcome.CategoryID != nil {
			cat, err := r.mapper.CategoryByRemoteID(ctx, *outcome.CategoryID)
			if err != nil {
				return err
			}
			if cat != nil {
				categoryID = &cat.ID
			}
		}

		title := outcome.Title
		content := outcome.Content
		isDeleted := outcome.IsDeleted != 0
		_, err = r.notes.Update(ctx, local.ID, notes.UpdateParams{
			Title:       &title,
			Content:     &content,
			SetCategory: true,
			CategoryID:  categoryID,
			RemoteID:    outcome.RemoteID,
			IsDeleted:   &isDeleted,
			UpdatedAt:   &updatedAt,
		})
		if err != nil {
			return err
		}
		r.log.Info(ctx, "applied newer remote note", "note", title)

	case RowStateRemoteDeprecated:
		r.log.Debug(ctx, "remote note updated from local copy", "note", local.Title)

	case RowStateInvalidRemoteID:
		r.log.Error(ctx, "remote rejected note remote id",
			"note", local.Title, "remote_id", outcome.RemoteID)

	case RowStateRowError:
		r.log.Error(ctx, "remote failed to process note",
			"note", local.Title, "error", outcome.ErrorMessage)

	case RowStateNotFoundInRemote:
		// Unlike categories, a note the remote no longer has is purged
		// locally.
		if err := r.notes.HardDelete(ctx, local.ID); err != nil {
			return err
		}
		r.log.Info(ctx, "deleted note no longer on remote", "note", local.Title)

	case RowStateUnchanged:
		r.log.Debug(ctx, "note already in sync", "note", local.Title)

	default:
		r.log.Warn(ctx, "unknown note sync state",
			"note", local.Title, "state", outcome.State)
	}

	return nil
}

// NoteImporter implements the note pull phase. Known remote ids are sent as
// an exclusion filter to bound the payload; each unknown note gets its
// category resolved through the Mapper or created from the metadata embedded
// in the payload — the only path that creates a category as a side effect of
// importing a note.
type NoteImporter struct {
	remote     remote.Client
	notes      notes.Repository
	categories categories.Repository
	mapper     *Mapper
	log        logging.Logger
}

func NewNoteImporter(rc remote.Client, noteRepo notes.Repository, categoryRepo categories.Repository, mapper *Mapper, log logging.Logger) *NoteImporter {
	return &NoteImporter{remote: rc, notes: noteRepo, categories: categoryRepo, mapper: mapper, log: log}
}

func (i *NoteImporter) Pull(ctx context.Context) error {
	all, err := i.notes.ListWithTrashed(ctx)
	if err != nil {
		return fmt.Errorf("failed to list local notes: %w", err)
	}

	var excepts []int64
	for _, n := range all {
		if n.RemoteID != nil {
			excepts = append(excepts, *n.RemoteID)
		}
	}

	remoteNotes, err := i.remote.FetchNotes(ctx, excepts)
	if err != nil {
		return fmt.Errorf("failed to fetch remote notes: %w", err)
	}

	for _, rn := range remoteNotes {
		if err := i.importNote(ctx, rn); err != nil {
			i.log.Error(ctx, "failed to import remote note",
				"note", rn.Title, "remote_id", rn.RemoteID, "error", err.Error())
		}
	}

	return nil
}

func (i *NoteImporter) importNote(ctx context.Context, rn remote.RemoteNote) error {
	existing, err := i.mapper.NoteByRemoteID(ctx, rn.RemoteID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	var categoryID *int64
	if rn.RemoteCategoryID != nil {
		cat, err := i.mapper.CategoryByRemoteID(ctx, *rn.RemoteCategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			cat, err = i.categories.Create(ctx, categories.CreateParams{
				Name:       rn.RemoteCategoryName,
				OrderIndex: rn.RemoteCategoryOrderIndex,
				RemoteID:   rn.RemoteCategoryID,
			})
			if err != nil {
				return fmt.Errorf("failed to create category %q: %w", rn.RemoteCategoryName, err)
			}
			i.log.Info(ctx, "created category from note payload",
				"category", cat.Name, "remote_id", *rn.RemoteCategoryID)
		}
		categoryID = &cat.ID
	}

	remoteID := rn.RemoteID
	if _, err := i.notes.Create(ctx, notes.CreateParams{
		Title:      rn.Title,
		Content:    rn.Content,
		CategoryID: categoryID,
		RemoteID:   &remoteID,
	}); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	i.log.Info(ctx, "imported note from remote", "note", rn.Title, "remote_id", rn.RemoteID)
	return nil
}
