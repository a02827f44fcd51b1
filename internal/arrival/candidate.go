package arrival

import "context"

// Origin records which producer found a candidate.
type Origin int

const (
	OriginStartupScan Origin = iota
	OriginLiveEvent
	OriginPollSweep
)

func (o Origin) String() string {
	switch o {
	case OriginStartupScan:
		return "startup-scan"
	case OriginLiveEvent:
		return "live-event"
	case OriginPollSweep:
		return "poll-sweep"
	default:
		return "unknown"
	}
}

// Candidate is a path that may hold a newly arrived archive.
type Candidate struct {
	Path   string
	Origin Origin
}

// Handler processes candidates. Handle is called from one goroutine at a time.
type Handler interface {
	Handle(ctx context.Context, candidate Candidate)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, candidate Candidate)

// Handle calls f(ctx, candidate).
func (f HandlerFunc) Handle(ctx context.Context, candidate Candidate) { f(ctx, candidate) }
