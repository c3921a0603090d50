package main

import (
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Siro", statusOK, "Running (pid 42)", false)
	if !strings.Contains(line, "[OK] Running (pid 42)") {
		t.Fatalf("unexpected line: %q", line)
	}
	if strings.Contains(line, ansiGreen) {
		t.Fatalf("expected no color codes: %q", line)
	}

	colored := renderStatusLine("Siro", statusWarn, "", true)
	if !strings.HasPrefix(colored, ansiYellow) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected yellow wrapping: %q", colored)
	}
	if !strings.Contains(colored, "[WARN]") {
		t.Fatalf("expected WARN label: %q", colored)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Watch", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %v", lines)
	}
	if lines[0] != "== Watch ==" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length %d does not match header length %d", len(lines[1]), len(lines[0]))
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Field", "Value"},
		[][]string{{"Ticks", "3"}, {"Last error"}},
		[]columnAlignment{alignLeft, alignLeft},
	)
	if !strings.Contains(out, "Ticks") || !strings.Contains(out, "Last error") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}
