// Package youtube wraps the three Data API queries the scanners need:
// latest-upload search, per-video details, and the recent-activity window.
//
// Every request carries one API key from the credential pool. On a quota
// rejection the client rotates to the next key and retries, trying each key
// at most once per logical call; when the whole pool is exhausted it fails
// with ErrQuotaExhausted and leaves the skip-or-escalate decision to the
// caller. Non-quota failures surface immediately as ErrUpstream since
// retrying with another key cannot help.
package youtube
