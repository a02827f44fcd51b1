// Package logging assembles structured slog loggers and formatting helpers used
// across zipwatch.
//
// It owns the line and JSON handlers, centralizes level and output plumbing,
// and exposes attribute helpers so the watcher, processor, and daemon tag log
// lines with the same event categories (DETECTED, EXTRACTED, TIMEOUT, ...).
// The line handler renders the historical "[YYYY-MM-DD HH:MM:SS] message"
// format that the log file has always used. The package also provides a no-op
// logger for tests and the crash fallback file writer used when the process
// dies before or despite logging.
package logging
