package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"zipwatch/internal/config"
	"zipwatch/internal/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logging.RecordCrash(defaultErrorFilePath(), r, debug.Stack())
			panic(r)
		}
	}()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// defaultErrorFilePath is used when a panic escapes before a config could be
// loaded.
func defaultErrorFilePath() string {
	if cfg, _, _, err := config.Load(""); err == nil {
		return cfg.ErrorFilePath()
	}
	logDir, err := config.ExpandPath("~/.local/share/zipwatch/logs")
	if err != nil {
		return "zipwatch-error.txt"
	}
	return logDir + string(os.PathSeparator) + "zipwatch-error.txt"
}
