// Package state persists per-kind deduplication records in SQLite.
//
// Each scanner tracks what it last notified under its own record kind.
// Records are read leniently (a missing or unreadable row degrades to the
// all-null default so the poller keeps running) and written strictly
// (whole-record overwrite, with the live kind's id and start time kept
// consistent).
package state
