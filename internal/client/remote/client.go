// Package remote talks to the authoritative note service over HTTP/JSON.
//
// The Client interface is the seam the sync engine depends on; tests provide
// fakes, production code uses HTTPClient. Payload field names follow the
// historical wire format (snake_case, is_deleted as 0/1).
package remote

import "context"

// Client is the remote API surface consumed by the sync engine.
type Client interface {
	// SyncCategories pushes every local category row as one batch and
	// returns the per-row outcomes.
	SyncCategories(ctx context.Context, categories []CategoryPush) (*CategorySyncResponse, error)

	// FetchCategories returns every category known to the remote.
	FetchCategories(ctx context.Context) ([]RemoteCategory, error)

	// SyncNotes pushes every local note row as one batch and returns the
	// per-row outcomes.
	SyncNotes(ctx context.Context, notes []NotePush) (*NoteSyncResponse, error)

	// FetchNotes returns remote notes, excluding the given remote ids to
	// bound the payload.
	FetchNotes(ctx context.Context, exceptRemoteIDs []int64) ([]RemoteNote, error)
}
