// Package logging builds the slog loggers used across the daemon and CLI.
//
// It supports a human-oriented console format and a machine-oriented JSON
// format, both selected through config. Attribute helpers keep call sites
// terse, and component loggers give every subsystem a stable prefix in
// console output.
package logging
