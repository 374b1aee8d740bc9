package main

import (
	"fmt"
	"strings"
	"testing"

	"hdrgroup/internal/deps"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("exiftool", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "exiftool:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Cache", statusOK, "", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "[OK]"+ansiReset) {
		t.Fatalf("expected reset suffix without message, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "exiftool", Available: false, Detail: "binary \"exiftool\" not found"},
		{Name: "exiftool", Available: false, Optional: true, Detail: "binary \"exiftool\" not found"},
		{Name: "exiftool", Available: true, Command: "/usr/bin/exiftool", Version: "12.76"},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[ERROR]") {
		t.Fatalf("expected error line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[WARN]") || !strings.Contains(lines[1], "optional") {
		t.Fatalf("expected optional warning, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "/usr/bin/exiftool (version 12.76)") {
		t.Fatalf("expected command and version, got %q", lines[2])
	}
}
