// Package sync reconciles the local note database with the remote
// authoritative service.
//
// # Phases
//
// A run executes four phases strictly in order, because later phases depend
// on remote-id bindings established by earlier ones:
//
//  1. Category push  — every local category row (tombstones included) is
//     sent as one batch; the remote's per-row verdicts are applied locally.
//  2. Category pull  — remote categories unknown locally are materialized.
//  3. Note push      — every local note row is sent with its category
//     reference translated to the category's remote id.
//  4. Note pull      — remote notes unknown locally are materialized,
//     resolving or creating their category from payload metadata.
//
// A category-push failure aborts the run: without category bindings the note
// phase's id remapping is unsound. Failures in the remaining phases are
// recoverable; they are logged and the run still reports success, relying on
// the next run to reconcile.
//
// # Id spaces
//
// Rows exist in two independent id spaces: local autoincrement ids and
// remote ids. Mapper is the single point of translation between them and the
// only component allowed to bind a remote id to a local row.
//
// # Concurrency
//
// Orchestrator.Run refuses to overlap with itself (common.ErrorSyncInProgress);
// within a run everything is sequential so a later row observes the bindings
// of an earlier one. Cancellation is honored between phases, never mid-phase,
// to avoid partial binds.
package sync
