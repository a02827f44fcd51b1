package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RecordCrash appends a timestamped diagnostic and stack trace to path. It is
// the last line of defence when the process runs without a console, so every
// failure is swallowed: there is nowhere left to report it.
func RecordCrash(path string, cause any, stack []byte) {
	if path == "" {
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()

	fmt.Fprintf(file, "[%s] %v\n", time.Now().Format(TimestampLayout), cause)
	if len(stack) > 0 {
		_, _ = file.Write(stack)
		if stack[len(stack)-1] != '\n' {
			_, _ = file.Write([]byte{'\n'})
		}
	}
}
