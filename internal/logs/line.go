package logs

import (
	"regexp"
	"strings"
	"time"

	"zipwatch/internal/logging"
)

var linePattern = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] (?:([A-Z][A-Z_]*): )?(.*)$`)

// Line is one parsed record of the line log format.
type Line struct {
	Time    time.Time
	Event   string
	Message string
	Raw     string
}

// Parse splits a raw log line into its parts. Lines that do not start with a
// bracketed timestamp (stack traces, JSON records) are reported as not ok.
func Parse(raw string) (Line, bool) {
	m := linePattern.FindStringSubmatch(raw)
	if m == nil {
		return Line{Raw: raw}, false
	}
	ts, err := time.ParseInLocation(logging.TimestampLayout, m[1], time.Local)
	if err != nil {
		return Line{Raw: raw}, false
	}
	return Line{Time: ts, Event: m[2], Message: m[3], Raw: raw}, true
}

// Filter selects lines to show. A nil Filter keeps everything.
type Filter func(raw string) bool

// EventFilter keeps lines whose category is one of events, compared
// case-insensitively.
func EventFilter(events ...string) Filter {
	if len(events) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(events))
	for _, event := range events {
		want[strings.ToUpper(strings.TrimSpace(event))] = struct{}{}
	}
	return func(raw string) bool {
		line, ok := Parse(raw)
		if !ok {
			return false
		}
		_, keep := want[line.Event]
		return keep
	}
}

func (f Filter) keep(raw string) bool {
	return f == nil || f(raw)
}
