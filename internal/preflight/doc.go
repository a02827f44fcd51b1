// Package preflight provides readiness checks for the filesystem locations
// zipwatch depends on.
//
// These checks run in two contexts:
//   - The daemon calls CheckVolume before touching the watch directory. A
//     missing volume (an unmounted cloud drive) ends the run early instead of
//     creating directories on the wrong filesystem.
//   - The CLI "zipwatch status" command uses RunAll to display every check.
package preflight
