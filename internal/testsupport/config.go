package testsupport

import (
	"path/filepath"
	"testing"

	"zipwatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Retry and settle delays are shrunk so pipelines finish quickly; callers
// override them through options when a test needs real waiting.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WatchDir = filepath.Join(base, "incoming")
	cfgVal.Paths.DestinationDir = filepath.Join(base, "dev")
	cfgVal.Paths.TodoFile = filepath.Join(base, "dev", "todo.md")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.MountRoot = ""
	cfgVal.Watch.LockRetries = 2
	cfgVal.Watch.LockRetryDelay = 0.01
	cfgVal.Watch.SettleDelay = 0.01

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPollInterval overrides the poll sweep interval in seconds.
func WithPollInterval(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watch.PollInterval = seconds
	}
}

// WithLockRetries overrides the readiness retry budget.
func WithLockRetries(retries int, delaySeconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watch.LockRetries = retries
		b.cfg.Watch.LockRetryDelay = delaySeconds
	}
}

// WithMountRoot sets the mount point the watch volume check requires.
func WithMountRoot(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.MountRoot = path
	}
}

// WithTodoDocument writes an initial task document at the configured path.
func WithTodoDocument(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteText(b.t, b.cfg.Paths.TodoFile, content)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
