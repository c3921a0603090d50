// Package config loads, normalizes, and validates siro configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SIRO_YOUTUBE_API_KEYS and SIRO_CHANNEL_ID. The Config type centralizes every
// knob the daemon and CLI need: the credential pool, the watched channel, the
// Discord webhook endpoints, and scan timing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
