package readiness

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"
)

func TestWaitReturnsOnFirstSuccessfulProbe(t *testing.T) {
	calls := 0
	probe := ProbeFunc(func(string) (bool, error) {
		calls++
		if calls < 3 {
			return false, nil
		}
		return true, nil
	})

	ready, err := Wait(context.Background(), probe, "/w/a.zip", 5, time.Millisecond)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !ready {
		t.Fatal("expected file to become ready")
	}
	if calls != 3 {
		t.Fatalf("expected 3 probe attempts, got %d", calls)
	}
}

func TestWaitExhaustsBudget(t *testing.T) {
	calls := 0
	probe := ProbeFunc(func(string) (bool, error) {
		calls++
		return false, errors.New("sharing violation")
	})

	const retries = 4
	const delay = 10 * time.Millisecond
	start := time.Now()
	ready, err := Wait(context.Background(), probe, "/w/a.zip", retries, delay)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if ready {
		t.Fatal("expected not ready")
	}
	if calls != retries {
		t.Fatalf("expected %d attempts, got %d", retries, calls)
	}
	if elapsed < retries*delay {
		t.Fatalf("expected at least %s elapsed, got %s", retries*delay, elapsed)
	}
}

func TestWaitStopsWhenFileDisappears(t *testing.T) {
	calls := 0
	probe := ProbeFunc(func(path string) (bool, error) {
		calls++
		return false, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	})

	ready, err := Wait(context.Background(), probe, "/w/gone.zip", 10, time.Second)
	if ready {
		t.Fatal("expected not ready")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestWaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	probe := ProbeFunc(func(string) (bool, error) {
		cancel()
		return false, nil
	})

	ready, err := Wait(ctx, probe, "/w/a.zip", 30, time.Hour)
	if ready {
		t.Fatal("expected not ready")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
