package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestReplEvaluatesAndPersistsAssignments(t *testing.T) {
	in := strings.NewReader("x := 5\nx+1\nexit\n")
	var out bytes.Buffer

	Start(in, &out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least two output lines, got %q", out.String())
	}
	if lines[0] != "5" {
		t.Fatalf("got %q want 5", lines[0])
	}
	if lines[1] != "6" {
		t.Fatalf("got %q want 6", lines[1])
	}
}

func TestReplReportsCompileErrors(t *testing.T) {
	in := strings.NewReader("nosuchvar+1\nexit\n")
	var out bytes.Buffer

	Start(in, &out)

	if !strings.Contains(out.String(), "Msg:") {
		t.Fatalf("expected rendered compile error, got %q", out.String())
	}
}

func TestReplStopsOnQuit(t *testing.T) {
	in := strings.NewReader("1+1\nquit\n2+2\n")
	var out bytes.Buffer

	Start(in, &out)

	if strings.Contains(out.String(), "4") {
		t.Fatalf("expected repl to stop at quit, got %q", out.String())
	}
}
