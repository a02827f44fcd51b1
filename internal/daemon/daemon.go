package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"zipwatch/internal/archive"
	"zipwatch/internal/arrival"
	"zipwatch/internal/config"
	"zipwatch/internal/logging"
	"zipwatch/internal/notifications"
	"zipwatch/internal/preflight"
)

// ErrAlreadyRunning is returned when another instance holds the lock file.
var ErrAlreadyRunning = errors.New("another zipwatch instance is already running")

// Processor handles one candidate path.
type Processor interface {
	Process(ctx context.Context, path string) archive.Result
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithProcessor replaces the archive processor built from the config.
func WithProcessor(p Processor) Option {
	return func(d *Daemon) {
		d.processor = p
	}
}

// WithNotifier replaces the ntfy service built from the config.
func WithNotifier(n notifications.Service) Option {
	return func(d *Daemon) {
		d.notifier = n
	}
}

// Daemon runs the watch lifecycle and enforces single-instance execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	processor Processor
	notifier  notifications.Service

	lockPath string
	lock     *flock.Flock

	running atomic.Bool

	mu     sync.Mutex
	counts map[archive.Status]int
	// notified holds the last failure status pushed for each source path.
	notified map[string]archive.Status
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	LockFilePath string
	Results      map[archive.Status]int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		lockPath: cfg.LockFilePath(),
		counts:   make(map[archive.Status]int),
		notified: make(map[string]archive.Status),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.processor == nil {
		d.processor = archive.NewProcessorFromConfig(cfg, logger)
	}
	if d.notifier == nil {
		d.notifier = notifications.NewService(cfg)
	}
	d.lock = flock.New(d.lockPath)
	return d, nil
}

// CheckNow handles the archives already in the watch directory and returns
// without starting the live watch.
func (d *Daemon) CheckNow(ctx context.Context) error {
	return d.withLock(ctx, true)
}

// Run handles existing archives, then watches and polls until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	return d.withLock(ctx, false)
}

func (d *Daemon) withLock(ctx context.Context, checkNow bool) error {
	if !d.running.CompareAndSwap(false, true) {
		return errors.New("daemon already running")
	}
	defer d.running.Store(false)

	if err := os.MkdirAll(d.cfg.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	pidPath := d.cfg.PIDFilePath()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	return d.run(ctx, checkNow)
}

func (d *Daemon) run(ctx context.Context, checkNow bool) error {
	paths := d.cfg.Paths

	volume := preflight.CheckVolume(paths.WatchDir, paths.MountRoot)
	if !volume.Passed {
		d.logger.Info("Drive not mounted: "+volume.Detail, logging.Event(logging.EventSkip))
		return nil
	}

	if err := d.ensureDir("Created watch folder", paths.WatchDir); err != nil {
		return err
	}
	if err := d.ensureDir("Created destination folder", paths.DestinationDir); err != nil {
		return err
	}

	source, err := arrival.New(arrival.Options{
		Dir:          paths.WatchDir,
		Extension:    d.cfg.Watch.ArchiveExtension,
		PollInterval: d.cfg.PollInterval(),
		SettleDelay:  d.cfg.SettleDelay(),
		Handler:      arrival.HandlerFunc(d.handle),
		Logger:       d.logger,
		OnPanic: func(recovered any, stack []byte) {
			logging.RecordCrash(d.cfg.ErrorFilePath(), recovered, stack)
		},
	})
	if err != nil {
		return fmt.Errorf("create arrival source: %w", err)
	}

	found, err := source.Startup(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("startup scan: %w", err)
	}

	if checkNow {
		if found == 0 {
			d.logger.Info("No zip files found.", logging.Event(logging.EventCheck))
		}
		return nil
	}

	d.logger.Info("=== Watcher started ===")
	d.logger.Info("Watching: " + paths.WatchDir)
	d.logger.Info("Extracting to: " + paths.DestinationDir)
	d.logger.Info("Press Ctrl+C to stop.")

	runErr := source.Run(ctx)
	d.logger.Info("=== Watcher stopped ===")
	if runErr != nil {
		return fmt.Errorf("watch %q: %w", paths.WatchDir, runErr)
	}
	return nil
}

func (d *Daemon) handle(ctx context.Context, candidate arrival.Candidate) {
	result := d.processor.Process(ctx, candidate.Path)

	d.mu.Lock()
	d.counts[result.Status]++
	d.mu.Unlock()

	d.logger.Debug("candidate handled",
		logging.String("path", candidate.Path),
		logging.String(logging.FieldOrigin, candidate.Origin.String()),
		logging.String("status", string(result.Status)),
	)
	d.notify(ctx, result)
}

// notify pushes the outcome of one candidate. A failure status is pushed once
// per path until the path is extracted or gone. Delivery failures are logged
// and never affect processing.
func (d *Daemon) notify(ctx context.Context, result archive.Result) {
	if !notifications.Enabled(d.notifier) {
		return
	}
	if !d.shouldNotify(result) {
		return
	}
	var err error
	switch result.Status {
	case archive.StatusExtracted:
		err = d.notifier.NotifyExtracted(ctx, filepath.Base(result.Source), result.Target, result.Files)
	case archive.StatusTimeout:
		budget := float64(d.cfg.Watch.LockRetries) * d.cfg.Watch.LockRetryDelay
		err = d.notifier.NotifyTimeout(ctx, result.Source, int(budget))
	case archive.StatusExtractFailed, archive.StatusDeleteFailed, archive.StatusTodoFailed:
		err = d.notifier.NotifyError(ctx, result.Err, filepath.Base(result.Source))
	default:
		return
	}
	if err != nil && ctx.Err() == nil {
		logging.WarnWithContext(d.logger, "notification failed", logging.EventNotify,
			logging.String("path", result.Source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic and network access"),
			logging.String(logging.FieldImpact, "archive was processed; only the push notification was lost"),
		)
	}
}

func (d *Daemon) shouldNotify(result archive.Result) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch result.Status {
	case archive.StatusTimeout, archive.StatusExtractFailed, archive.StatusDeleteFailed, archive.StatusTodoFailed:
		if d.notified[result.Source] == result.Status {
			return false
		}
		d.notified[result.Source] = result.Status
	default:
		delete(d.notified, result.Source)
	}
	return true
}

func (d *Daemon) ensureDir(message, path string) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}
	d.logger.Info(message + ": " + path)
	return nil
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	results := make(map[archive.Status]int, len(d.counts))
	for status, n := range d.counts {
		results[status] = n
	}
	return Status{
		Running:      d.running.Load(),
		LockFilePath: d.lockPath,
		Results:      results,
	}
}
