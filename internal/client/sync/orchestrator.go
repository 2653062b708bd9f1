package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/notelance/notelance/internal/client/remote"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/metadata"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/notelance/notelance/internal/common"
	"github.com/notelance/notelance/internal/logging"
	"github.com/notelance/notelance/internal/timex"
)

// Status is the orchestrator's lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the single value a run produces.
type Result struct {
	Status    Status
	Timestamp time.Time
	RunID     string

	// Err is set only when Status is StatusError.
	Err string
}

// Orchestrator sequences the four sync phases and produces one Result per
// run. Runs never overlap: a second Run while one is in flight returns an
// error result immediately.
type Orchestrator struct {
	runMu stdsync.Mutex

	mu     stdsync.RWMutex
	status Status

	categoryReconciler *CategoryReconciler
	categoryImporter   *CategoryImporter
	noteReconciler     *NoteReconciler
	noteImporter       *NoteImporter
	meta               metadata.Repository
	log                logging.Logger
}

func NewOrchestrator(
	rc remote.Client,
	categoryRepo categories.Repository,
	noteRepo notes.Repository,
	meta metadata.Repository,
	log logging.Logger,
) *Orchestrator {
	mapper := NewMapper(categoryRepo, noteRepo)
	return &Orchestrator{
		status:             StatusIdle,
		categoryReconciler: NewCategoryReconciler(rc, categoryRepo, mapper, log),
		categoryImporter:   NewCategoryImporter(rc, categoryRepo, mapper, log),
		noteReconciler:     NewNoteReconciler(rc, noteRepo, mapper, log),
		noteImporter:       NewNoteImporter(rc, noteRepo, categoryRepo, mapper, log),
		meta:               meta,
		log:                log,
	}
}

// Status reports the current lifecycle state.
func (o *Orchestrator) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

func (o *Orchestrator) setStatus(s Status) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// Run executes one full sync. The category push is the only fatal phase:
// notes reference categories by remote id, so without its bindings the note
// phases would remap unsoundly. The remaining phases log failures and leave
// reconciliation to the next run.
func (o *Orchestrator) Run(ctx context.Context) Result {
	if !o.runMu.TryLock() {
		return Result{
			Status:    StatusError,
			Timestamp: timex.Now(),
			Err:       common.ErrorSyncInProgress.Error(),
		}
	}
	defer o.runMu.Unlock()

	runID := uuid.NewString()
	log := o.log.With("run_id", runID)

	o.setStatus(StatusSyncing)
	log.Info(ctx, "sync started")

	result := o.run(ctx, log)
	result.RunID = runID

	o.setStatus(result.Status)
	o.record(ctx, log, result)

	if result.Status == StatusSuccess {
		log.Info(ctx, "sync finished")
	} else {
		log.Error(ctx, "sync failed", "error", result.Err)
	}
	return result
}

func (o *Orchestrator) run(ctx context.Context, log logging.Logger) Result {
	fail := func(err error) Result {
		return Result{Status: StatusError, Timestamp: timex.Now(), Err: err.Error()}
	}

	if err := ctx.Err(); err != nil {
		return fail(fmt.Errorf("sync canceled: %w", err))
	}

	if err := o.categoryReconciler.Push(ctx); err != nil {
		return fail(err)
	}

	// The remaining phases are supplementary: partial success beats
	// aborting the run.
	phases := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"category import", o.categoryImporter.Pull},
		{"note push", o.noteReconciler.Push},
		{"note import", o.noteImporter.Pull},
	}

	for _, phase := range phases {
		// Cancellation is honored between phases only, to avoid partial
		// binds.
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("sync canceled: %w", err))
		}
		if err := phase.fn(ctx); err != nil {
			log.Warn(ctx, "recoverable phase failure", "phase", phase.name, "error", err.Error())
		}
	}

	return Result{Status: StatusSuccess, Timestamp: timex.Now()}
}

func (o *Orchestrator) record(ctx context.Context, log logging.Logger, result Result) {
	if o.meta == nil {
		return
	}
	if err := o.meta.Set(ctx, metadata.KeyLastSyncAt, []byte(timex.FormatUTC(result.Timestamp))); err != nil {
		log.Warn(ctx, "failed to record last sync time", "error", err.Error())
		return
	}
	if err := o.meta.Set(ctx, metadata.KeyLastSyncStatus, []byte(result.Status)); err != nil {
		log.Warn(ctx, "failed to record last sync status", "error", err.Error())
	}
}
