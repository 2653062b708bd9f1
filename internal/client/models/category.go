// Package models defines the client-side data models persisted in the local
// database and mirrored to the remote service.
package models

import "time"

// Category is a named, ordered bucket for notes.
//
// ID is the local primary key, assigned once by the local store and never
// reused. RemoteID is the primary key on the remote service; it stays nil
// until the first successful creation there. Active categories keep their
// OrderIndex values contiguous (0..n-1).
type Category struct {
	ID         int64
	RemoteID   *int64
	Name       string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// IsDeleted marks the row as a tombstone kept for synchronization.
	IsDeleted bool
}
