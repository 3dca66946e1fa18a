package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/fasm"
)

// LintLevel is the severity of a lint finding.
type LintLevel int

const (
	LintError   LintLevel = iota // parse failures
	LintWarning                  // Misconfig-class issues from BLECfg.Validate
	LintInfo                     // stylistic/informational observations
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is a single finding against a configuration.
type LintIssue struct {
	Level   LintLevel
	BLE     int // -1 when the issue is not tied to a single logic element
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	if i.BLE < 0 {
		return fmt.Sprintf("%s: %s [%s]", i.Level, i.Message, i.Code)
	}
	return fmt.Sprintf("BLE %d: %s: %s [%s]", i.BLE, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	Strict           bool // treat FASM parse warnings as errors
	CheckUnreachable bool // flag BLEs whose output drives nothing
}

// DefaultLintOptions returns the default linter options.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{
		Strict:           false,
		CheckUnreachable: true,
	}
}

// Linter analyzes a decoded configuration for structural issues.
type Linter struct {
	options *LintOptions
	issues  []*LintIssue
}

// NewLinter creates a new linter.
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{options: options, issues: make([]*LintIssue, 0)}
}

// LintSource parses FASM source and lints the resulting record. Parse
// warnings are folded in as LintWarning (or LintError under
// LintOptions.Strict) issues with BLE set to -1.
func (l *Linter) LintSource(input string) []*LintIssue {
	l.issues = l.issues[:0]

	rec, warnings, err := fasm.Parse(strings.NewReader(input), fasm.Options{Strict: l.options.Strict})
	if err != nil {
		l.issues = append(l.issues, &LintIssue{
			Level:   LintError,
			BLE:     -1,
			Message: err.Error(),
			Code:    "PARSE_ERROR",
		})
		return l.issues
	}

	for _, w := range warnings {
		level := LintWarning
		if l.options.Strict {
			level = LintError
		}
		l.issues = append(l.issues, &LintIssue{
			Level:   level,
			BLE:     -1,
			Message: w.Error(),
			Code:    "PARSE_WARNING",
		})
	}

	return l.lintRecord(rec)
}

// LintRecord runs the structural checks against an already-decoded record.
// Each call starts from an empty issue list.
func (l *Linter) LintRecord(rec *clbcfg.Record) []*LintIssue {
	l.issues = l.issues[:0]
	return l.lintRecord(rec)
}

// lintRecord runs the structural checks, appending to any issues already
// collected by LintSource.
func (l *Linter) lintRecord(rec *clbcfg.Record) []*LintIssue {
	for i := range rec.BLEs {
		for _, w := range rec.BLEs[i].Validate() {
			l.issues = append(l.issues, &LintIssue{
				Level:   LintWarning,
				BLE:     i,
				Message: w.Error(),
				Code:    "MISCONFIG",
			})
		}
	}

	if l.options.CheckUnreachable {
		l.checkUnreachable(rec)
	}

	sort.SliceStable(l.issues, func(i, j int) bool {
		return l.issues[i].Level < l.issues[j].Level
	})
	return l.issues
}

// checkUnreachable flags BLEs whose LUT mask computes a non-constant-zero
// function but whose output is never selected by any PPS output or IRQ
// output — a configuration that computes a value nobody reads.
func (l *Linter) checkUnreachable(rec *clbcfg.Record) {
	used := make(map[int]bool, len(rec.BLEs))

	for _, p := range rec.PPSOut {
		if p == nil {
			continue
		}
		if idx, err := p.BLE(); err == nil {
			used[idx] = true
		}
	}
	for _, irq := range rec.IRQOut {
		if irq == nil {
			continue
		}
		if idx, err := irq.BLE(); err == nil {
			used[idx] = true
		}
	}

	for i, cfg := range rec.BLEs {
		if cfg.LUTMask == nil || *cfg.LUTMask == 0 {
			continue
		}
		if used[i] {
			continue
		}
		l.issues = append(l.issues, &LintIssue{
			Level:   LintInfo,
			BLE:     i,
			Message: "logic element computes a non-trivial function but its output is not selected by any PPS/IRQ output",
			Code:    "UNREACHABLE_OUTPUT",
		})
	}
}
