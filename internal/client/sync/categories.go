package sync

import (
	"context"
	"fmt"

	"github.com/notelance/notelance/internal/client/models"
	"github.com/notelance/notelance/internal/client/remote"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/common"
	"github.com/notelance/notelance/internal/logging"
	"github.com/notelance/notelance/internal/timex"
)

// CategoryReconciler implements the category push phase: every local row,
// tombstones included, goes out in one batch and the remote's per-row
// verdicts are applied locally. Any batch-level failure here is fatal for
// the whole run.
type CategoryReconciler struct {
	remote     remote.Client
	categories categories.Repository
	mapper     *Mapper
	log        logging.Logger
}

func NewCategoryReconciler(rc remote.Client, repo categories.Repository, mapper *Mapper, log logging.Logger) *CategoryReconciler {
	return &CategoryReconciler{remote: rc, categories: repo, mapper: mapper, log: log}
}

func (r *CategoryReconciler) Push(ctx context.Context) error {
	rows, err := r.categories.ListWithTrashed(ctx)
	if err != nil {
		return fmt.Errorf("failed to list local categories: %w", err)
	}

	payload := make([]remote.CategoryPush, 0, len(rows))
	index := make(map[int64]models.Category, len(rows))
	for _, c := range rows {
		index[c.ID] = c
		payload = append(payload, remote.CategoryPush{
			ClientID:   c.ID,
			RemoteID:   c.RemoteID,
			Name:       c.Name,
			OrderIndex: c.OrderIndex,
			IsDeleted:  wireBool(c.IsDeleted),
			CreatedAt:  timex.FormatUTC(c.CreatedAt),
			UpdatedAt:  timex.FormatUTC(c.UpdatedAt),
		})
	}

	resp, err := r.remote.SyncCategories(ctx, payload)
	if err != nil {
		return fmt.Errorf("category sync request failed: %w", err)
	}

	switch resp.State {
	case remote.StateCategoriesSynced:
	case remote.StateCategoriesSyncFailed:
		return fmt.Errorf("%w: categories: %s", common.ErrorSyncFailed, resp.ErrorMessage)
	default:
		return fmt.Errorf("%w: unexpected category response state %q", common.ErrorSyncFailed, resp.State)
	}

	for _, outcome := range resp.Categories {
		local, ok := index[outcome.ClientID]
		if !ok {
			return fmt.Errorf("%w: category client_id %d", common.ErrorBatchMismatch, outcome.ClientID)
		}
		if err := r.apply(ctx, &local, outcome); err != nil {
			r.log.Error(ctx, "failed to apply category outcome",
				"category", local.Name, "state", outcome.State, "error", err.Error())
		}
	}

	return nil
}

func (r *CategoryReconciler) apply(ctx context.Context, local *models.Category, outcome remote.CategoryOutcome) error {
	switch ParseRowState(outcome.State) {
	case RowStateCreated:
		if outcome.RemoteID == nil {
			r.log.Error(ctx, "remote did not assign an id to new category",
				"category", local.Name, "message", outcome.Message)
			return nil
		}
		if err := r.mapper.BindCategory(ctx, local, *outcome.RemoteID); err != nil {
			return err
		}
		r.log.Info(ctx, "bound category to remote id", "category", local.Name, "remote_id", *outcome.RemoteID)

	case RowStateRemoteNewer:
		updatedAt, err := timex.ParseUTC(outcome.UpdatedAt)
		if err != nil {
			return fmt.Errorf("invalid remote updated_at: %w", err)
		}
		name := outcome.Name
		orderIndex := outcome.OrderIndex
		isDeleted := outcome.IsDeleted != 0
		_, err = r.categories.Update(ctx, local.ID, categories.UpdateParams{
			Name:       &name,
			OrderIndex: &orderIndex,
			IsDeleted:  &isDeleted,
			UpdatedAt:  &updatedAt,
		})
		if err != nil {
			return err
		}
		r.log.Info(ctx, "applied newer remote category", "category", name)

	case RowStateRemoteDeprecated:
		r.log.Debug(ctx, "remote category updated from local copy", "category", local.Name)

	case RowStateInvalidRemoteID:
		r.log.Error(ctx, "remote rejected category remote id",
			"category", local.Name, "remote_id", outcome.RemoteID)

	case RowStateRowError:
		r.log.Error(ctx, "remote failed to process category",
			"category", local.Name, "error", outcome.ErrorMessage)

	case RowStateNotFoundInRemote:
		// Categories are never deleted on this signal (unlike notes).
		r.log.Info(ctx, "category no longer exists on remote", "category", local.Name)

	case RowStateUnchanged:
		r.log.Debug(ctx, "category already in sync", "category", local.Name)

	default:
		r.log.Warn(ctx, "unknown category sync state",
			"category", local.Name, "state", outcome.State)
	}

	return nil
}

// CategoryImporter implements the category pull phase: remote categories
// whose remote id is unknown locally are materialized with the binding set
// at creation time. Re-running after nothing changed creates nothing.
type CategoryImporter struct {
	remote     remote.Client
	categories categories.Repository
	mapper     *Mapper
	log        logging.Logger
}

func NewCategoryImporter(rc remote.Client, repo categories.Repository, mapper *Mapper, log logging.Logger) *CategoryImporter {
	return &CategoryImporter{remote: rc, categories: repo, mapper: mapper, log: log}
}

func (i *CategoryImporter) Pull(ctx context.Context) error {
	remoteCategories, err := i.remote.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch remote categories: %w", err)
	}

	for _, rc := range remoteCategories {
		existing, err := i.mapper.CategoryByRemoteID(ctx, rc.RemoteID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		order := rc.OrderIndex
		remoteID := rc.RemoteID
		if _, err := i.categories.Create(ctx, categories.CreateParams{
			Name:       rc.Name,
			OrderIndex: &order,
			RemoteID:   &remoteID,
		}); err != nil {
			return fmt.Errorf("failed to import category %q: %w", rc.Name, err)
		}
		i.log.Info(ctx, "imported category from remote", "category", rc.Name, "remote_id", rc.RemoteID)
	}

	return nil
}

func wireBool(b bool) int {
	if b {
		return 1
	}
	return 0
}
