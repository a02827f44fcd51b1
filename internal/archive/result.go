package archive

// Status is the outcome of processing one candidate.
type Status string

const (
	// StatusExtracted means the archive was extracted and deleted.
	StatusExtracted Status = "extracted"
	// StatusMissing means the source was already gone; nothing happened.
	StatusMissing Status = "missing"
	// StatusTimeout means the file stayed busy for the whole retry budget.
	StatusTimeout Status = "timeout"
	// StatusExtractFailed means extraction failed and the source was kept.
	StatusExtractFailed Status = "extract_failed"
	// StatusDeleteFailed means extraction succeeded but the source remains.
	StatusDeleteFailed Status = "delete_failed"
	// StatusTodoFailed means extraction and deletion succeeded but the task
	// document could not be updated.
	StatusTodoFailed Status = "todo_failed"
	// StatusCanceled means the context ended before extraction started.
	StatusCanceled Status = "canceled"
)

// Result describes what Process did with a candidate.
type Result struct {
	Status    Status
	Source    string
	Target    string
	Files     int
	TodoAdded bool
	Err       error
}
