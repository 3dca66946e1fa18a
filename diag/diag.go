// Package diag is the structured-logging sink for configuration
// diagnostics: it takes the warning-class errors package clbcfg and
// package fasm accumulate (Misconfig, ParseError, and friends) and routes
// them through a logrus logger instead of discarding or panicking on
// them, since none of these are fatal to the surrounding operation.
package diag

import (
	"io"

	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus.Logger configured for this package's warning
// taxonomy: every warning gets a "kind" field naming its clberr type, so
// downstream log aggregation can filter by failure class.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger writing to w at the given level.
func New(w io.Writer, level logrus.Level) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{Logger: l}
}

// kindOf names the concrete clberr type of err for the "kind" log field,
// e.g. "Misconfig", "ParseError". Falls back to the Go type name for any
// other error.
func kindOf(err error) string {
	switch err.(type) {
	case *clberr.Misconfig:
		return "Misconfig"
	case *clberr.ParseError:
		return "ParseError"
	case *clberr.UnknownEncoding:
		return "UnknownEncoding"
	case *clberr.ValueDoesNotFit:
		return "ValueDoesNotFit"
	case *clberr.IndexOutOfRange:
		return "IndexOutOfRange"
	case *clberr.LengthMismatch:
		return "LengthMismatch"
	case *clberr.IOFailure:
		return "IOFailure"
	case *clberr.ArityExceeded:
		return "ArityExceeded"
	case *clberr.PortCollision:
		return "PortCollision"
	case *clberr.TypeMisuse:
		return "TypeMisuse"
	default:
		return "error"
	}
}

// Warn logs a single warning-class error at Warn level with its kind
// field set.
func (l *Logger) Warn(err error) {
	l.WithField("kind", kindOf(err)).Warn(err.Error())
}

// WarnAll logs each warning in errs at Warn level. Callers typically pass
// the result of clbcfg.Record.Validate or fasm.Parse's warning slice
// directly.
func (l *Logger) WarnAll(errs []error) {
	for _, err := range errs {
		l.Warn(err)
	}
}

// Fatal logs err at Error level with its kind field set; used for the
// handful of failures (Strict-mode ParseError, bitstream codec errors)
// that abort the surrounding operation rather than merely warn.
func (l *Logger) Fatal(err error) {
	l.WithField("kind", kindOf(err)).Error(err.Error())
}
