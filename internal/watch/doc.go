// Package watch schedules the scan cycle.
//
// One watcher owns one timer loop; each tick runs the upload scanner and the
// live scanner sequentially so their upstream requests never contend. Live
// detection is latency sensitive, so a failed live scan gets a single
// off-cycle retry before folding back into the regular schedule.
package watch
