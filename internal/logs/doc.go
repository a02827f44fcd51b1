// Package logs reads the persistent zipwatch log for the CLI.
//
// It returns the last N lines with bounded memory usage, parses the
// "[timestamp] CATEGORY: message" line format so output can be filtered by
// category, and follows the file for new lines using fsnotify. Callers supply
// a context so following shuts down cleanly when the CLI exits.
package logs
