// Package config loads, normalizes, and validates zipwatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ZIPWATCH_WATCH_DIR. The Config type centralizes every knob the watcher and
// CLI need so the watch directory, destination, task document, and timing
// budget are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
