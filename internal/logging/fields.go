package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEvent carries the line category (DETECTED, EXTRACTED, ...).
	FieldEvent = "event"
	// FieldCorrelationID identifies one candidate's trip through the processor.
	FieldCorrelationID = "correlation_id"
	// FieldSessionID identifies one process run.
	FieldSessionID = "session_id"
	// FieldOrigin records where a candidate came from.
	FieldOrigin = "origin"
	// FieldErrorHint is the standardized key for the suggested next step after a failure.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

// Event categories written to the log file. They are part of the log format
// that people grep for, so the values never change.
const (
	EventDetected  = "DETECTED"
	EventFound     = "FOUND"
	EventExtracted = "EXTRACTED"
	EventDeleted   = "DELETED"
	EventTodo      = "TODO"
	EventTimeout   = "TIMEOUT"
	EventError     = "ERROR"
	EventPoll      = "POLL"
	EventCheck     = "CHECK"
	EventSkip      = "SKIP"
	EventNotify    = "NOTIFY"
)
