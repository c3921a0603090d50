// Package scan holds the per-tick detection logic for channel activity.
//
// UploadScanner watches the newest upload and classifies it as a short or a
// standard video; LiveScanner watches a bounded window of recent uploads for
// an in-progress broadcast. Each scanner owns its deduplication records
// exclusively and dispatches at most one notification per distinct event.
// Fetch failures abort the current scan without touching state; notification
// failures are logged and never retried.
package scan
