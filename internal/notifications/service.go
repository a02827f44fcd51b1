package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"zipwatch/internal/config"
)

const userAgent = "zipwatch/0.1.0"

// Service defines the notification surface used by the daemon.
type Service interface {
	NotifyExtracted(ctx context.Context, name, target string, files int) error
	NotifyTimeout(ctx context.Context, path string, seconds int) error
	NotifyError(ctx context.Context, err error, label string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: cfg.NotifyTimeout()},
	}
}

// Enabled reports whether svc delivers anything.
func Enabled(svc Service) bool {
	_, noop := svc.(noopService)
	return svc != nil && !noop
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyExtracted(ctx context.Context, name, target string, files int) error {
	message := fmt.Sprintf("📦 Extracted %s (%d files)", strings.TrimSpace(name), files)
	if target = strings.TrimSpace(target); target != "" {
		message += "\nFolder: " + target
	}
	return n.send(ctx, payload{
		title:   "zipwatch - Extracted",
		message: message,
		tags:    []string{"zipwatch", "extract", "completed"},
	})
}

func (n *ntfyService) NotifyTimeout(ctx context.Context, path string, seconds int) error {
	return n.send(ctx, payload{
		title:   "zipwatch - Still Syncing",
		message: fmt.Sprintf("⏳ %s was still locked after %d seconds\nIt will be retried on the next poll", strings.TrimSpace(path), seconds),
		tags:    []string{"zipwatch", "timeout"},
	})
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, label string) error {
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if label = strings.TrimSpace(label); label != "" {
		builder.WriteString(" with ")
		builder.WriteString(label)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return n.send(ctx, payload{
		title:    "zipwatch - Error",
		message:  builder.String(),
		tags:     []string{"zipwatch", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "zipwatch - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"zipwatch", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyExtracted(context.Context, string, string, int) error { return nil }
func (noopService) NotifyTimeout(context.Context, string, int) error           { return nil }
func (noopService) NotifyError(context.Context, error, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
