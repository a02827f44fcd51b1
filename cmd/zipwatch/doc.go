// Command zipwatch watches a synchronized folder for zip archives, extracts
// each one into the destination directory once the sync client has finished
// writing it, removes the original and records a follow-up entry in the task
// document.
//
// Running zipwatch without a subcommand starts the watcher in the foreground.
// The remaining subcommands inspect the same configuration: pending archives,
// task document entries and preflight status.
package main
