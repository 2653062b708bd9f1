// Package categories provides the client-side persistence layer for note
// categories.
//
// # Overview
//
// The package defines a Repository interface for CRUD and query operations
// on Category models (see internal/client/models). A SQLite-backed
// implementation (SQLiteRepository) persists data using a dbx.DBTX (either
// *sql.DB or *sql.Tx).
//
// # Data Model
//
// Each category stores a nullable remote id (its identity on the remote
// service), an order_index used for display ordering, and a soft-delete flag
// (is_deleted). Soft-deleted rows are tombstones retained for
// synchronization; listings exclude them unless ListWithTrashed is used.
// Deleting a category first detaches every referencing note (category_id is
// set to NULL), never deleting notes.
//
// # Ordering
//
// Active categories keep order_index contiguous. RenumberOrder rewrites the
// indexes to the caller-supplied order as 0..n-1; run it inside dbx.WithTx
// so a failed renumbering never leaves gaps behind.
package categories
