package models

import "time"

// Note is a single note row. CategoryID references an active local Category;
// nil means general/uncategorized. RemoteID is nil until the note has been
// created on the remote service.
type Note struct {
	ID         int64
	RemoteID   *int64
	Title      string
	Content    string
	CategoryID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	IsDeleted  bool
}
