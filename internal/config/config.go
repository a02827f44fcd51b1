package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations.
type Paths struct {
	WatchDir       string `toml:"watch_dir"`
	DestinationDir string `toml:"destination_dir"`
	TodoFile       string `toml:"todo_file"`
	LogDir         string `toml:"log_dir"`
	// MountRoot is an optional mount point that must be present before a run
	// starts (e.g. the FUSE mount of a cloud drive client).
	MountRoot string `toml:"mount_root"`
}

// Watch contains arrival detection and readiness timing. Durations are in seconds.
type Watch struct {
	ArchiveExtension string  `toml:"archive_extension"`
	PollInterval     int     `toml:"poll_interval"`
	LockRetries      int     `toml:"lock_retries"`
	LockRetryDelay   float64 `toml:"lock_retry_delay"`
	SettleDelay      float64 `toml:"settle_delay"`
}

// Notifications contains optional ntfy delivery settings.
type Notifications struct {
	// NtfyTopic is the full topic URL, e.g. https://ntfy.sh/my-archives.
	// Empty disables notifications.
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for zipwatch.
//
// Configuration sections by subsystem:
//   - Paths: watch/destination directories, task document, log directory
//   - Watch: archive suffix, poll interval, lock retry budget, settle delay
//   - Notifications: optional ntfy topic for extraction and failure alerts
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Watch         Watch         `toml:"watch"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(filepath.Join(filepath.Dir(resolvedPath), ".env")); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("zipwatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureLogDirectory creates the log directory. Watch and destination
// directories are created by the daemon after the volume check passes, so a
// missing drive never gets directories created on the wrong filesystem.
func (c *Config) EnsureLogDirectory() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// LogFilePath returns the persistent log file location.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "zipwatch.log")
}

// ErrorFilePath returns the fallback file that receives crash diagnostics.
func (c *Config) ErrorFilePath() string {
	return filepath.Join(c.Paths.LogDir, "zipwatch-error.txt")
}

// LockFilePath returns the single-instance lock file location.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Paths.LogDir, "zipwatch.lock")
}

// PIDFilePath returns the file holding the running instance's process ID.
func (c *Config) PIDFilePath() string {
	return filepath.Join(c.Paths.LogDir, "zipwatch.pid")
}

// PollInterval returns the poll sweep interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollInterval) * time.Second
}

// LockRetryDelay returns the delay between readiness probe attempts.
func (c *Config) LockRetryDelay() time.Duration {
	return seconds(c.Watch.LockRetryDelay)
}

// SettleDelay returns the pause between a live event and readiness probing.
func (c *Config) SettleDelay() time.Duration {
	return seconds(c.Watch.SettleDelay)
}

// NotifyTimeout returns the per-request timeout for ntfy deliveries.
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

// ApplyPollIntervalOverride replaces the configured poll interval. It is meant
// for command-line overrides applied before startup.
func (c *Config) ApplyPollIntervalOverride(secondsValue int) error {
	if secondsValue <= 0 {
		return errors.New("poll interval override must be positive")
	}
	c.Watch.PollInterval = secondsValue
	return nil
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
