// Package arrival discovers archives landing in the watch directory.
//
// Three producers feed one consumer: a synchronous startup scan, an fsnotify
// watch on the directory and a periodic poll sweep that catches whatever the
// watch missed. Live and poll candidates share a FIFO work queue drained by a
// single goroutine, and a per-path in-flight set keeps a path from being
// queued again while it is waiting or being handled.
package arrival
