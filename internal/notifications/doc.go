// Package notifications pushes extraction results to ntfy.
//
// The ntfy implementation posts plain-text messages to the topic URL from
// config.toml. When no topic is configured NewService returns a no-op, so the
// daemon calls the Service unconditionally.
package notifications
