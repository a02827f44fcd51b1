// Package daemon coordinates the long-running zipwatch process.
//
// It wires configuration, the archive processor and the arrival source into a
// single lifecycle with flock-based locking to prevent multiple instances:
// volume preflight, directory setup, the startup scan, and then either an
// early return (check-now mode) or live watching until the context ends.
//
// Keep orchestration logic here: extraction and detection live in their
// respective packages while the daemon focuses on startup, shutdown, and high
// level coordination.
package daemon
