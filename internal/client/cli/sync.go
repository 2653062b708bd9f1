package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/notelance/notelance/internal/client/repositories/metadata"
	"github.com/notelance/notelance/internal/client/sync"
	"github.com/notelance/notelance/internal/common"
)

// Sync runs one full synchronization pass against the remote.
func (a *App) Sync(ctx context.Context) error {
	result := a.orchestrator.Run(ctx)

	switch result.Status {
	case sync.StatusSuccess:
		fmt.Fprintf(a.out, "Synced at %s\n", result.Timestamp.Local().Format("2006-01-02 15:04:05"))
		return nil
	default:
		if result.Err == common.ErrorSyncInProgress.Error() {
			fmt.Fprintln(a.out, "A sync is already running")
		} else {
			fmt.Fprintf(a.out, "Sync failed: %s\n", result.Err)
		}
		return errors.New(result.Err)
	}
}

// Status prints the current engine state and the recorded outcome of the
// last sync run.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "Engine: %s\n", a.orchestrator.Status())

	at, err := a.meta.Get(ctx, metadata.KeyLastSyncAt)
	if err != nil {
		return err
	}
	if at == nil {
		fmt.Fprintln(a.out, "Never synced")
		return nil
	}

	status, err := a.meta.Get(ctx, metadata.KeyLastSyncStatus)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Last sync: %s (%s)\n", string(at), string(status))
	return nil
}
