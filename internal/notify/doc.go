// Package notify delivers Discord webhook notifications for channel events.
//
// Upload and shorts notifications go to the primary webhook; live
// notifications go to the live webhook when one is configured. Each delivery
// is attempted exactly once and failures are reported to the caller, never
// retried here.
package notify
