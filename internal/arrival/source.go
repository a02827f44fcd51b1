package arrival

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"zipwatch/internal/logging"
)

// Options configures a Source.
type Options struct {
	Dir          string
	Extension    string
	PollInterval time.Duration
	SettleDelay  time.Duration
	Handler      Handler
	Logger       *slog.Logger
	// FS is used for directory listings; defaults to the OS filesystem. The
	// live watch always observes the real directory.
	FS afero.Fs
	// OnPanic is called with the recovered value and stack when the handler
	// panics on the consumer goroutine. The panic is re-raised afterwards.
	OnPanic func(recovered any, stack []byte)
}

// Source produces candidates from the watch directory.
type Source struct {
	dir          string
	extension    string
	pollInterval time.Duration
	settleDelay  time.Duration
	handler      Handler
	logger       *slog.Logger
	fs           afero.Fs
	onPanic      func(any, []byte)
	queue        *workQueue
}

// New constructs a Source.
func New(opts Options) (*Source, error) {
	if opts.Dir == "" {
		return nil, errors.New("arrival: watch directory is required")
	}
	if opts.Extension == "" {
		return nil, errors.New("arrival: archive extension is required")
	}
	if opts.Handler == nil {
		return nil, errors.New("arrival: handler is required")
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Source{
		dir:          opts.Dir,
		extension:    opts.Extension,
		pollInterval: opts.PollInterval,
		settleDelay:  opts.SettleDelay,
		handler:      opts.Handler,
		logger:       logging.NewComponentLogger(opts.Logger, "arrival"),
		fs:           fsys,
		onPanic:      opts.OnPanic,
		queue:        newWorkQueue(),
	}, nil
}

// Startup hands every archive already present to the handler, one at a time
// in lexicographic order, and returns how many were found.
func (s *Source) Startup(ctx context.Context) (int, error) {
	paths, err := Scan(s.fs, s.dir, s.extension)
	if err != nil {
		return 0, err
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return len(paths), err
		}
		s.logger.Info("Found existing zip: "+path,
			logging.Event(logging.EventFound),
			logging.String(logging.FieldOrigin, OriginStartupScan.String()),
		)
		s.handler.Handle(ctx, Candidate{Path: path, Origin: OriginStartupScan})
	}
	return len(paths), nil
}

// Run watches the directory and polls it until ctx is cancelled. On return the
// watcher is closed, pending settle timers have ended and the candidate being
// handled, if any, has finished.
func (s *Source) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %q: %w", s.dir, err)
	}

	var consumer sync.WaitGroup
	consumer.Add(1)
	go func() {
		defer consumer.Done()
		s.consume(ctx)
	}()

	var pollC <-chan time.Time
	if s.pollInterval > 0 {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		pollC = ticker.C
	}

	var settling sync.WaitGroup
	defer func() {
		if err := watcher.Close(); err != nil {
			s.logger.Debug("close watcher", logging.Error(err))
		}
		settling.Wait()
		consumer.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher closed unexpectedly")
			}
			s.handleEvent(ctx, event, &settling)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher closed unexpectedly")
			}
			logging.WarnWithContext(s.logger, "watch error", logging.EventError,
				logging.Error(err),
				logging.String(logging.FieldImpact, "live detection may miss files until the next poll"),
			)
		case <-pollC:
			s.sweep()
		}
	}
}

func (s *Source) handleEvent(ctx context.Context, event fsnotify.Event, settling *sync.WaitGroup) {
	// Moves into the directory arrive as Create.
	if !event.Has(fsnotify.Create) || !Match(event.Name, s.extension) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return
	}
	s.logger.Info(event.Name,
		logging.Event(logging.EventDetected),
		logging.String(logging.FieldOrigin, OriginLiveEvent.String()),
	)

	settling.Add(1)
	go func(path string) {
		defer settling.Done()
		if s.settleDelay > 0 {
			timer := time.NewTimer(s.settleDelay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		s.enqueue(Candidate{Path: path, Origin: OriginLiveEvent})
	}(event.Name)
}

func (s *Source) sweep() {
	paths, err := Scan(s.fs, s.dir, s.extension)
	if err != nil {
		logging.WarnWithContext(s.logger, "poll sweep failed", logging.EventPoll,
			logging.Error(err),
			logging.String(logging.FieldImpact, "archives are picked up on the next sweep"),
		)
		return
	}
	for _, path := range paths {
		s.logger.Info("Found "+path,
			logging.Event(logging.EventPoll),
			logging.String(logging.FieldOrigin, OriginPollSweep.String()),
		)
		s.enqueue(Candidate{Path: path, Origin: OriginPollSweep})
	}
}

func (s *Source) enqueue(candidate Candidate) {
	if !s.queue.push(candidate) {
		s.logger.Debug("candidate already in flight",
			logging.String("path", candidate.Path),
			logging.String(logging.FieldOrigin, candidate.Origin.String()),
		)
	}
}

func (s *Source) consume(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			if s.onPanic != nil {
				s.onPanic(r, debug.Stack())
			}
			panic(r)
		}
	}()
	for {
		candidate, ok := s.queue.pop(ctx)
		if !ok {
			return
		}
		s.handler.Handle(ctx, candidate)
		s.queue.done(candidate.Path)
	}
}
