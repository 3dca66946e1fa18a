package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/diag"
	"github.com/sirupsen/logrus"
)

func TestWarnIncludesKindField(t *testing.T) {
	var buf bytes.Buffer
	l := diag.New(&buf, logrus.DebugLevel)
	l.Warn(clberr.NewMisconfig("input %s active but not wired", "IN0"))

	out := buf.String()
	if !strings.Contains(out, "kind=Misconfig") {
		t.Errorf("expected kind=Misconfig in output, got: %s", out)
	}
	if !strings.Contains(out, "level=warning") {
		t.Errorf("expected warning level, got: %s", out)
	}
}

func TestWarnAllLogsEveryError(t *testing.T) {
	var buf bytes.Buffer
	l := diag.New(&buf, logrus.DebugLevel)
	l.WarnAll([]error{
		clberr.NewParseError("BAD.LINE", "unrecognized"),
		clberr.NewMisconfig("x"),
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
}

func TestFatalLogsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	l := diag.New(&buf, logrus.DebugLevel)
	l.Fatal(clberr.NewIndexOutOfRange(5, 4))

	out := buf.String()
	if !strings.Contains(out, "level=error") {
		t.Errorf("expected error level, got: %s", out)
	}
	if !strings.Contains(out, "kind=IndexOutOfRange") {
		t.Errorf("expected kind=IndexOutOfRange, got: %s", out)
	}
}
