package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func (c *Config) normalize(envFile string) error {
	if err := c.applyEnvOverrides(envFile); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

// applyEnvOverrides reads ZIPWATCH_* overrides from the process environment,
// falling back to an optional .env file next to the config file. The process
// environment always wins and is never modified.
func (c *Config) applyEnvOverrides(envFile string) error {
	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}

	if value, ok := lookup("ZIPWATCH_WATCH_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.WatchDir = strings.TrimSpace(value)
	}
	if value, ok := lookup("ZIPWATCH_DESTINATION_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DestinationDir = strings.TrimSpace(value)
	}
	if value, ok := lookup("ZIPWATCH_TODO_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.TodoFile = strings.TrimSpace(value)
	}
	if value, ok := lookup("ZIPWATCH_NTFY_TOPIC"); ok {
		c.Notifications.NtfyTopic = strings.TrimSpace(value)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WatchDir, err = expandPath(strings.TrimSpace(c.Paths.WatchDir)); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if c.Paths.DestinationDir, err = expandPath(strings.TrimSpace(c.Paths.DestinationDir)); err != nil {
		return fmt.Errorf("paths.destination_dir: %w", err)
	}
	if c.Paths.TodoFile, err = expandPath(strings.TrimSpace(c.Paths.TodoFile)); err != nil {
		return fmt.Errorf("paths.todo_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.MountRoot, err = expandPath(strings.TrimSpace(c.Paths.MountRoot)); err != nil {
		return fmt.Errorf("paths.mount_root: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatch() {
	ext := strings.ToLower(strings.TrimSpace(c.Watch.ArchiveExtension))
	if ext == "" {
		ext = defaultArchiveExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Watch.ArchiveExtension = ext
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "line", "console":
		c.Logging.Format = "line"
	case "json":
	default:
		c.Logging.Format = "line"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
