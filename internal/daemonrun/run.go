package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"zipwatch/internal/config"
	"zipwatch/internal/daemon"
	"zipwatch/internal/logging"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// LogLevel overrides logging.level from the config when set.
	LogLevel   string
	CheckNow   bool
	Diagnostic bool
	// Console replaces stdout as the console log destination; tests point it
	// at a file.
	Console string
}

// Run builds the logger and runs the daemon until SIGINT/SIGTERM or, in
// check-now mode, until the startup scan is done.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureLogDirectory(); err != nil {
		return err
	}

	logger, err := buildLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}

	if opts.CheckNow {
		return d.CheckNow(signalCtx)
	}
	return d.Run(signalCtx)
}

func buildLogger(cfg *config.Config, opts Options) (*slog.Logger, error) {
	logCfg := *cfg
	if opts.LogLevel != "" {
		logCfg.Logging.Level = opts.LogLevel
	}
	logger, err := logging.NewFromConfig(&logCfg, opts.Console)
	if err != nil {
		return nil, err
	}
	if !opts.Diagnostic {
		return logger, nil
	}

	sessionID := uuid.NewString()
	runID := time.Now().UTC().Format("20060102T150405.000Z")
	debugDir := filepath.Join(cfg.Paths.LogDir, "debug")
	if err := os.MkdirAll(debugDir, 0o755); err != nil {
		return nil, fmt.Errorf("create debug log directory: %w", err)
	}
	debugLogPath := filepath.Join(debugDir, fmt.Sprintf("zipwatch-%s.log", runID))
	debugLogger, debugErr := logging.New(logging.Options{
		Level:            "debug",
		Format:           "json",
		OutputPaths:      []string{debugLogPath},
		ErrorOutputPaths: []string{debugLogPath},
		Development:      true,
	})
	if debugErr != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to initialize debug logger: %v\n", debugErr)
		return logger, nil
	}
	logger = logging.TeeLogger(logger, debugLogger.Handler()).With(logging.String(logging.FieldSessionID, sessionID))
	logger.Debug("diagnostic mode enabled",
		logging.String("debug_log_path", debugLogPath),
	)
	return logger, nil
}
