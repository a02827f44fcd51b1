// Package readiness decides whether a file is free of external writers.
//
// Cloud drive clients keep an archive open while they stream it to disk, and
// size or mtime polling cannot tell a paused transfer from a finished one. A
// Probe instead attempts an exclusive open: on Windows a CreateFile with no
// sharing, on Unix a non-blocking exclusive flock combined (on Linux) with a
// scan of other processes' open descriptors. Wait retries the probe a bounded
// number of times and reports a plain ready/not-ready outcome.
package readiness
