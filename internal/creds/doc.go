// Package creds manages the rotating pool of YouTube API keys.
//
// The upstream Data API enforces a daily per-key quota. The pool spreads load
// across keys preemptively and fails over to the next key when the current one
// is rejected, so a single exhausted key does not stop the notifier. Rotation
// state lives in an explicit Pool value rather than package globals so
// multiple pollers can run independently in tests.
package creds
