package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "aquatype.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a discarding logger unless debug is set; the terminal is
// in raw mode while running, so logs never go to stdout or stderr
func setupLogging(debug bool) (*log.Logger, *os.File) {
	if !debug {
		stdlog.SetOutput(io.Discard)
		return log.New(io.Discard), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		stdlog.SetOutput(io.Discard)
		return log.New(io.Discard), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("aquatype-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		stdlog.SetOutput(io.Discard)
		return log.New(io.Discard), nil
	}

	// Libraries logging through the standard logger land in the same file
	stdlog.SetOutput(f)
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Level:           log.DebugLevel,
		Prefix:          "aquatype",
	})
	return logger, f
}
