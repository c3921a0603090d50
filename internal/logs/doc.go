// Package logs reads the daemon log file for the CLI: trailing lines for a
// quick look and offset-based polling for follow mode.
package logs
