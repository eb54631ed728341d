package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{" trace ", LevelTrace},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateLevel(t *testing.T) {
	for _, ok := range []string{"", "info", "Debug", "trace"} {
		if err := ValidateLevel(ok); err != nil {
			t.Errorf("ValidateLevel(%q) = %v", ok, err)
		}
	}
	if err := ValidateLevel("verbose"); err == nil {
		t.Error("ValidateLevel(verbose) should fail")
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level      string
		logAtTrace bool
		logAtDebug bool
	}{
		{"info", false, false},
		{"debug", false, true},
		{"trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("debug message")
			if got := strings.Contains(buf.String(), "debug message"); got != tt.logAtDebug {
				t.Errorf("debug visible = %v, want %v", got, tt.logAtDebug)
			}

			buf.Reset()
			logger.Log(t.Context(), LevelTrace, "sentence", "tokens", 3)
			out := buf.String()
			if got := strings.Contains(out, "sentence"); got != tt.logAtTrace {
				t.Errorf("trace visible = %v, want %v", got, tt.logAtTrace)
			}
			if tt.logAtTrace && !strings.Contains(out, "level=TRACE") {
				t.Errorf("trace level not labelled: %q", out)
			}
		})
	}
}

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "decisions.jsonl"))
	if err != nil {
		t.Fatalf("read decisions.jsonl: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewDecisionLogger_InfoLevel(t *testing.T) {
	dir := t.TempDir()
	dl := NewDecisionLogger(dir, "info")
	if dl != nil {
		t.Error("expected nil DecisionLogger at info level")
	}

	dl.Log("selection", map[string]any{"zoom": 20})
	if dl.RunID() != "" {
		t.Error("nil logger should have an empty run id")
	}
	if _, err := os.Stat(filepath.Join(dir, "decisions.jsonl")); err == nil {
		t.Error("decisions.jsonl should not exist at info level")
	}
}

func TestDecisionLogger_Entries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state", "nested")
	dl := NewDecisionLogger(dir, "debug")
	if dl == nil {
		t.Fatal("expected non-nil DecisionLogger at debug level")
	}

	event := map[string]any{"strategy": "ranked", "zoom": 20}
	dl.Log("selection", event)
	dl.Log("count_mode", map[string]any{"mode": "once"})
	dl.Close()
	dl.Log("after_close", nil)

	if _, ok := event["time"]; ok {
		t.Error("Log mutated the caller's map")
	}

	entries := readEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	first := entries[0]
	if first["decision"] != "selection" || first["strategy"] != "ranked" || first["zoom"] != float64(20) {
		t.Errorf("first entry = %v", first)
	}
	if first["run_id"] != dl.RunID() || entries[1]["run_id"] != dl.RunID() {
		t.Errorf("run ids = %v, %v; want %s", first["run_id"], entries[1]["run_id"], dl.RunID())
	}
	if _, ok := first["time"]; !ok {
		t.Error("expected time field")
	}
}

func TestDecisionLogger_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	dl := NewDecisionLogger(dir, "trace")
	defer dl.Close()
	dl.Log("perm_test", nil)

	info, err := os.Stat(filepath.Join(dir, "decisions.jsonl"))
	if err != nil {
		t.Fatalf("stat decisions.jsonl: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func TestDecisionLogger_NilSafety(t *testing.T) {
	var dl *DecisionLogger
	dl.Log("should_not_panic", nil)
	dl.Close()
}
