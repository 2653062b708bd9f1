// Package common defines shared constants and sentinel errors used across
// Notelance components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorNoFieldsToUpdate = errors.New("no fields to update")

	// Identity mapping errors.
	ErrorRemoteIDConflict = errors.New("remote id already bound to another record")

	// Sync engine errors.
	ErrorSyncInProgress = errors.New("sync already in progress")
	ErrorBatchMismatch  = errors.New("response references a row absent from the sent batch")
	ErrorSyncFailed     = errors.New("sync failed")
)
