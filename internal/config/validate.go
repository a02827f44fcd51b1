package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return c.validateNotifications()
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	parsed, err := url.Parse(topic)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", topic)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		return errors.New("paths.watch_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DestinationDir) == "" {
		return errors.New("paths.destination_dir must be set")
	}
	if filepath.Clean(c.Paths.WatchDir) == filepath.Clean(c.Paths.DestinationDir) {
		return errors.New("paths.destination_dir must differ from paths.watch_dir")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.ArchiveExtension == "." || strings.ContainsAny(c.Watch.ArchiveExtension, `/\`) {
		return errors.New("watch.archive_extension must be a file suffix such as .zip")
	}
	if c.Watch.PollInterval <= 0 {
		return errors.New("watch.poll_interval must be positive (seconds)")
	}
	if c.Watch.LockRetries < 1 {
		return errors.New("watch.lock_retries must be at least 1")
	}
	if c.Watch.LockRetryDelay < 0 {
		return errors.New("watch.lock_retry_delay must be >= 0")
	}
	if c.Watch.SettleDelay < 0 {
		return errors.New("watch.settle_delay must be >= 0")
	}
	return nil
}
