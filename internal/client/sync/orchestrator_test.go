package sync

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/notelance/notelance/internal/client/remote"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/metadata"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/notelance/notelance/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EndToEndBindsAndExcludes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	cat, err := env.categories.Create(ctx, categories.CreateParams{Name: "Work"})
	require.NoError(t, err)
	note, err := env.notes.Create(ctx, notes.CreateParams{Title: "todo", CategoryID: &cat.ID})
	require.NoError(t, err)

	catRemote := int64(100)
	noteRemote := int64(900)
	fr := &fakeRemote{
		syncCategoriesFn: func(_ context.Context, batch []remote.CategoryPush) (*remote.CategorySyncResponse, error) {
			return &remote.CategorySyncResponse{
				State: remote.StateCategoriesSynced,
				Categories: []remote.CategoryOutcome{{
					State:    RowStateCreated.String(),
					ClientID: batch[0].ClientID,
					RemoteID: &catRemote,
				}},
			}, nil
		},
		syncNotesFn: func(_ context.Context, batch []remote.NotePush) (*remote.NoteSyncResponse, error) {
			// the note phase runs after the category phase bound id 100
			require.NotNil(t, batch[0].CategoryID)
			assert.Equal(t, int64(100), *batch[0].CategoryID)
			return &remote.NoteSyncResponse{
				State: remote.StateNotesSynced,
				Notes: []remote.NoteOutcome{{
					State:    RowStateCreated.String(),
					ClientID: batch[0].ClientID,
					RemoteID: &noteRemote,
				}},
			}, nil
		},
	}

	o := NewOrchestrator(fr, env.categories, env.notes, env.meta, env.log)

	result := o.Run(ctx)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, StatusSuccess, o.Status())

	gotCat, err := env.categories.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	require.NotNil(t, gotCat.RemoteID)
	assert.Equal(t, int64(100), *gotCat.RemoteID)

	gotNote, err := env.notes.GetByID(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, gotNote.RemoteID)
	assert.Equal(t, int64(900), *gotNote.RemoteID)

	// the freshly bound note id is excluded from the same run's fetch
	require.Len(t, fr.noteExcepts, 1)
	assert.Equal(t, []int64{900}, fr.noteExcepts[0])
}

func TestRun_SecondRunIsUnchangedEverywhere(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.categories.Create(ctx, categories.CreateParams{Name: "Work"})
	require.NoError(t, err)
	_, err = env.notes.Create(ctx, notes.CreateParams{Title: "todo"})
	require.NoError(t, err)

	catRemote := int64(100)
	noteRemote := int64(900)
	firstRun := true
	fr := &fakeRemote{}
	fr.syncCategoriesFn = func(_ context.Context, batch []remote.CategoryPush) (*remote.CategorySyncResponse, error) {
		if firstRun {
			return &remote.CategorySyncResponse{
				State: remote.StateCategoriesSynced,
				Categories: []remote.CategoryOutcome{{
					State:    RowStateCreated.String(),
					ClientID: batch[0].ClientID,
					RemoteID: &catRemote,
				}},
			}, nil
		}
		// every row must now carry its binding
		require.NotNil(t, batch[0].RemoteID)
		return unchangedCategories(batch), nil
	}
	fr.syncNotesFn = func(_ context.Context, batch []remote.NotePush) (*remote.NoteSyncResponse, error) {
		if firstRun {
			return &remote.NoteSyncResponse{
				State: remote.StateNotesSynced,
				Notes: []remote.NoteOutcome{{
					State:    RowStateCreated.String(),
					ClientID: batch[0].ClientID,
					RemoteID: &noteRemote,
				}},
			}, nil
		}
		require.NotNil(t, batch[0].RemoteID)
		return unchangedNotes(batch), nil
	}

	o := NewOrchestrator(fr, env.categories, env.notes, env.meta, env.log)

	require.Equal(t, StatusSuccess, o.Run(ctx).Status)
	firstRun = false
	require.Equal(t, StatusSuccess, o.Run(ctx).Status)

	// two runs, two pushes each; no rows created or lost
	cats, err := env.categories.ListWithTrashed(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	ns, err := env.notes.ListWithTrashed(ctx)
	require.NoError(t, err)
	assert.Len(t, ns, 1)
}

func TestRun_CategoryPushFailureAbortsRun(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	fr := &fakeRemote{
		syncCategoriesFn: func(_ context.Context, _ []remote.CategoryPush) (*remote.CategorySyncResponse, error) {
			return &remote.CategorySyncResponse{State: remote.StateCategoriesSyncFailed, ErrorMessage: "down"}, nil
		},
	}
	o := NewOrchestrator(fr, env.categories, env.notes, env.meta, env.log)

	result := o.Run(ctx)
	assert.Equal(t, StatusError, result.Status)
	assert.NotEmpty(t, result.Err)
	assert.Equal(t, StatusError, o.Status())

	// none of the later phases ran
	assert.Empty(t, fr.noteBatches)
	assert.Empty(t, fr.noteExcepts)
}

func TestRun_RecoverablePhaseFailureStillSucceeds(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	fr := &fakeRemote{
		fetchCategoriesFn: func(_ context.Context) ([]remote.RemoteCategory, error) {
			return nil, context.DeadlineExceeded
		},
	}
	o := NewOrchestrator(fr, env.categories, env.notes, env.meta, env.log)

	result := o.Run(ctx)
	assert.Equal(t, StatusSuccess, result.Status)

	// the note phases still ran despite the category import failing
	assert.Len(t, fr.noteBatches, 1)
	assert.Len(t, fr.noteExcepts, 1)
}

func TestRun_OverlappingRunsAreRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	fr := &fakeRemote{
		syncCategoriesFn: func(_ context.Context, batch []remote.CategoryPush) (*remote.CategorySyncResponse, error) {
			close(started)
			<-release
			return unchangedCategories(batch), nil
		},
	}
	o := NewOrchestrator(fr, env.categories, env.notes, env.meta, env.log)

	var wg stdsync.WaitGroup
	wg.Add(1)
	var first Result
	go func() {
		defer wg.Done()
		first = o.Run(ctx)
	}()

	<-started
	second := o.Run(ctx)
	assert.Equal(t, StatusError, second.Status)
	assert.Equal(t, common.ErrorSyncInProgress.Error(), second.Err)

	close(release)
	wg.Wait()
	assert.Equal(t, StatusSuccess, first.Status)
}

func TestRun_CancellationStopsBetweenPhases(t *testing.T) {
	env := setupEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	fr := &fakeRemote{
		syncCategoriesFn: func(_ context.Context, batch []remote.CategoryPush) (*remote.CategorySyncResponse, error) {
			cancel()
			return unchangedCategories(batch), nil
		},
	}
	o := NewOrchestrator(fr, env.categories, env.notes, env.meta, env.log)

	result := o.Run(ctx)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Err, "canceled")
	assert.Empty(t, fr.noteBatches)
}

func TestRun_RecordsOutcomeInMetadata(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	o := NewOrchestrator(&fakeRemote{}, env.categories, env.notes, env.meta, env.log)

	before := time.Now().UTC().Add(-time.Second)
	result := o.Run(ctx)
	require.Equal(t, StatusSuccess, result.Status)

	at, err := env.meta.Get(ctx, metadata.KeyLastSyncAt)
	require.NoError(t, err)
	require.NotNil(t, at)
	ts, err := time.Parse(time.RFC3339Nano, string(at))
	require.NoError(t, err)
	assert.True(t, ts.After(before))

	status, err := env.meta.Get(ctx, metadata.KeyLastSyncStatus)
	require.NoError(t, err)
	assert.Equal(t, string(StatusSuccess), string(status))
}
