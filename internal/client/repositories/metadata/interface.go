// Package metadata is a small key/value store for client bookkeeping that
// does not belong in the domain tables: the stable client id and the outcome
// of the last sync run.
package metadata

import "context"

// Well-known keys.
const (
	KeyClientID       = "client_id"
	KeyLastSyncAt     = "last_sync_at"
	KeyLastSyncStatus = "last_sync_status"
)

type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
