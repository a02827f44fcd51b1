package readiness

import (
	"context"
	"errors"
	"io/fs"
	"time"
)

// Probe attempts a single exclusive open of path. It returns true when no
// other process holds the file, releasing its own handle before returning.
// A missing file is reported as an error wrapping fs.ErrNotExist.
type Probe interface {
	TryExclusive(path string) (bool, error)
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc func(path string) (bool, error)

// TryExclusive calls f(path).
func (f ProbeFunc) TryExclusive(path string) (bool, error) { return f(path) }

// Wait probes path up to retries times, sleeping delay after every failed
// attempt. It returns true on the first successful exclusive open and false
// once the budget is exhausted. The error is non-nil only when the file
// disappeared (fs.ErrNotExist) or ctx was cancelled; transient probe errors
// such as sharing violations count as failed attempts.
func Wait(ctx context.Context, probe Probe, path string, retries int, delay time.Duration) (bool, error) {
	if retries < 1 {
		retries = 1
	}
	for attempt := 0; attempt < retries; attempt++ {
		ready, err := probe.TryExclusive(path)
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
		if ready && err == nil {
			return true, nil
		}
		if err := sleep(ctx, delay); err != nil {
			return false, err
		}
	}
	return false, nil
}

func sleep(ctx context.Context, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
