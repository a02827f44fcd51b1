//go:build !linux && !windows

package readiness

// heldByOtherProcess has no portable implementation outside Linux; the flock
// probe alone decides.
func heldByOtherProcess(string) (bool, error) {
	return false, nil
}
