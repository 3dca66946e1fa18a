// Package service holds the domain logic behind the HTTP/WebSocket API:
// loading FASM source into a configuration record, formatting it,
// linting it, cross-referencing its signals, and packing it into a
// bitstream — independent of how a caller (HTTP handler, CLI, TUI)
// reaches it.
package service

import (
	"time"

	"github.com/clbtoolchain/clbfab/tools"
)

// SessionState is the current state of a configuration session.
type SessionState string

const (
	// StateEmpty means no source has been loaded yet.
	StateEmpty SessionState = "empty"
	// StateLoaded means source parsed without fatal errors.
	StateLoaded SessionState = "loaded"
	// StateError means the last load attempt failed to parse.
	StateError SessionState = "error"
)

// DiagnosticsSummary is a lightweight count of lint issues by level, used
// for session-status responses that don't need the full issue list.
type DiagnosticsSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Summarize tallies issues by level.
func Summarize(issues []*tools.LintIssue) DiagnosticsSummary {
	var s DiagnosticsSummary
	for _, iss := range issues {
		switch iss.Level {
		case tools.LintError:
			s.Errors++
		case tools.LintWarning:
			s.Warnings++
		case tools.LintInfo:
			s.Infos++
		}
	}
	return s
}

// BLESummary is a compact view of one logic element for list responses.
type BLESummary struct {
	Index    int    `json:"index"`
	Equation string `json:"equation"`
	Flop     string `json:"flop"`
}

// LoadResult is returned by CompilerService.LoadSource.
type LoadResult struct {
	State     SessionState
	Warnings  []error
	LoadedAt  time.Time
	ParseFail error
}
