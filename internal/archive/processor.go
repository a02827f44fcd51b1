package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"zipwatch/internal/config"
	"zipwatch/internal/logging"
	"zipwatch/internal/readiness"
	"zipwatch/internal/todo"
)

// Options configures a Processor. Zero values fall back to the operating
// system filesystem, the platform readiness probe, a single probe attempt
// and a no-op logger.
type Options struct {
	FS             afero.Fs
	Probe          readiness.Probe
	Todo           *todo.Document
	Destination    string
	LockRetries    int
	LockRetryDelay time.Duration
	Logger         *slog.Logger
}

// Processor extracts arrived archives into the destination directory.
type Processor struct {
	fs          afero.Fs
	probe       readiness.Probe
	todo        *todo.Document
	destination string
	retries     int
	delay       time.Duration
	logger      *slog.Logger
}

// NewProcessor constructs a Processor from opts.
func NewProcessor(opts Options) *Processor {
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	probe := opts.Probe
	if probe == nil {
		probe = readiness.NewProbe()
	}
	retries := opts.LockRetries
	if retries < 1 {
		retries = 1
	}
	delay := opts.LockRetryDelay
	if delay < 0 {
		delay = 0
	}
	return &Processor{
		fs:          fsys,
		probe:       probe,
		todo:        opts.Todo,
		destination: opts.Destination,
		retries:     retries,
		delay:       delay,
		logger:      logging.NewComponentLogger(opts.Logger, "processor"),
	}
}

// NewProcessorFromConfig wires a Processor for the real filesystem.
func NewProcessorFromConfig(cfg *config.Config, logger *slog.Logger) *Processor {
	return NewProcessor(Options{
		Todo:           todo.New(cfg.Paths.TodoFile),
		Destination:    cfg.Paths.DestinationDir,
		LockRetries:    cfg.Watch.LockRetries,
		LockRetryDelay: cfg.LockRetryDelay(),
		Logger:         logger,
	})
}

// Process runs the extraction pipeline for path. It never returns an error;
// failures are logged and reported through the Result. Calling Process again
// for a path that was already handled is a no-op reported as StatusMissing.
func (p *Processor) Process(ctx context.Context, path string) Result {
	logger := p.logger.With(logging.String(logging.FieldCorrelationID, uuid.NewString()))
	result := Result{Source: path}

	if _, err := p.fs.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("archive already gone", logging.String("path", path))
			result.Status = StatusMissing
			return result
		}
		return p.fail(logger, result, StatusExtractFailed, fmt.Errorf("stat archive: %w", err))
	}

	ready, err := readiness.Wait(ctx, p.probe, path, p.retries, p.delay)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("archive disappeared while waiting", logging.String("path", path))
		result.Status = StatusMissing
		return result
	case err != nil:
		logger.Debug("processing canceled", logging.String("path", path), logging.Error(err))
		result.Status = StatusCanceled
		result.Err = err
		return result
	case !ready:
		seconds := int((time.Duration(p.retries) * p.delay).Seconds())
		logger.Info(fmt.Sprintf("Could not access %s after %d seconds. Skipping.", path, seconds),
			logging.Event(logging.EventTimeout),
		)
		result.Status = StatusTimeout
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Status = StatusCanceled
		result.Err = err
		return result
	}

	target, err := ResolveTarget(p.fs, p.destination, TargetName(path))
	if err != nil {
		return p.fail(logger, result, StatusExtractFailed, err)
	}
	if err := p.fs.MkdirAll(target, 0o755); err != nil {
		return p.fail(logger, result, StatusExtractFailed, fmt.Errorf("create target %q: %w", target, err))
	}

	files, err := Extract(p.fs, path, target)
	if err != nil {
		// The target was free before this run, so nothing but partial output lives there.
		if rmErr := p.fs.RemoveAll(target); rmErr != nil {
			logger.Debug("partial extraction not removed", logging.String("target", target), logging.Error(rmErr))
		}
		return p.fail(logger, result, StatusExtractFailed, err)
	}
	result.Target = target
	result.Files = files
	logger.Info(fmt.Sprintf("%s -> %s", path, target),
		logging.Event(logging.EventExtracted),
		logging.Int("files", files),
	)

	if err := p.fs.Remove(path); err != nil {
		return p.fail(logger, result, StatusDeleteFailed, fmt.Errorf("delete archive: %w", err))
	}
	logger.Info(path, logging.Event(logging.EventDeleted))

	result.Status = StatusExtracted
	if p.todo == nil {
		return result
	}
	name := filepath.Base(target)
	added, err := p.todo.EnsureEntry(name)
	if err != nil {
		return p.fail(logger, result, StatusTodoFailed, err)
	}
	if added {
		result.TodoAdded = true
		logger.Info("Added entry for "+name, logging.Event(logging.EventTodo))
	}
	return result
}

func (p *Processor) fail(logger *slog.Logger, result Result, status Status, err error) Result {
	result.Status = status
	result.Err = err
	logging.ErrorWithContext(logger, "Failed to process archive", logging.EventError,
		logging.String("path", result.Source),
		logging.String("status", string(status)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, errorHint(status)),
	)
	return result
}

func errorHint(status Status) string {
	switch status {
	case StatusExtractFailed:
		return "archive kept in the watch directory; check that it is a valid zip"
	case StatusDeleteFailed:
		return "content extracted; remove the archive by hand to stop reprocessing"
	case StatusTodoFailed:
		return "content extracted; add the task entry by hand"
	default:
		return "check logs for details"
	}
}
