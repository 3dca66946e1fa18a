package api

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// newDebugLogger builds a logrus logger for the API package's own
// internal diagnostics (upgrade failures, session lifecycle), distinct
// from diag.Logger's clberr-warning taxonomy. Debug-level file logging
// is opt-in via CLB_API_DEBUG so a production deployment doesn't pay
// for file I/O on every request by default.
func newDebugLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if os.Getenv("CLB_API_DEBUG") == "" {
		l.SetOutput(io.Discard)
		return l
	}

	logPath := filepath.Join(os.TempDir(), "clb-api-debug.log")
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- fixed filename in temp dir
	if err != nil {
		l.SetOutput(os.Stderr)
		return l
	}
	l.SetOutput(f)
	l.SetLevel(logrus.DebugLevel)
	return l
}
