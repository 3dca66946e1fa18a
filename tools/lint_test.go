package tools

import (
	"strings"
	"testing"

	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/signal"
)

func TestLintSourceReportsParseError(t *testing.T) {
	linter := NewLinter(&LintOptions{Strict: true})
	issues := linter.LintSource("BLE_X1Y2.BLE0.LUT.INIT[15:0] = garbage\n")

	if len(issues) != 1 || issues[0].Level != LintError {
		t.Fatalf("expected a single LintError under Strict, got %+v", issues)
	}
}

func TestLintSourceWarnsLenientByDefault(t *testing.T) {
	linter := NewLinter(nil)
	issues := linter.LintSource("BLE_X1Y2.BLE0.LUT.INIT[15:0] = garbage\n")

	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
	for _, iss := range issues {
		if iss.Level == LintError {
			t.Errorf("expected lenient mode to downgrade parse problems to warnings, got error: %s", iss)
		}
	}
}

func TestLintRecordFlagsMisconfig(t *testing.T) {
	rec := clbcfg.New()
	mask := boolexpr.LUTMask(0xAAAA) // pure function of input A
	rec.BLEs[0].LUTMask = &mask
	// Leave port A unset even though the mask says it is active.

	linter := NewLinter(nil)
	issues := linter.LintRecord(rec)

	found := false
	for _, iss := range issues {
		if iss.Code == "MISCONFIG" && iss.BLE == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MISCONFIG issue for BLE 0, got %+v", issues)
	}
}

func TestLintRecordFlagsUnreachableOutput(t *testing.T) {
	rec := clbcfg.New()
	mask := boolexpr.LUTMask(0x0001)
	rec.BLEs[5].LUTMask = &mask
	sig := signal.Signal{Port: signal.PortA, Code: 0}
	rec.BLEs[5].SetPort(signal.PortA, sig)

	linter := NewLinter(&LintOptions{CheckUnreachable: true})
	issues := linter.LintRecord(rec)

	found := false
	for _, iss := range issues {
		if iss.Code == "UNREACHABLE_OUTPUT" && iss.BLE == 5 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected BLE 5 flagged unreachable, got %+v", issues)
	}
}

func TestLintIssueString(t *testing.T) {
	iss := &LintIssue{Level: LintWarning, BLE: 3, Message: "oops", Code: "X"}
	s := iss.String()
	if !strings.Contains(s, "BLE 3") || !strings.Contains(s, "oops") {
		t.Errorf("unexpected issue string: %s", s)
	}
}
