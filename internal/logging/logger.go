// Package logging provides leveled logging and decision tracing for cooccur.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A DecisionLogger for JSONL traces of pipeline choices (decisions.jsonl)
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LevelTrace is a custom slog level below Debug. At this level every
// filtered sentence is logged.
const LevelTrace = slog.LevelDebug - 4

// Levels lists the accepted level names.
var Levels = []string{"info", "debug", "trace"}

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// ValidateLevel reports an error for a level name ParseLevel would not
// recognize. Empty means info.
func ValidateLevel(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info", "debug", "trace":
		return nil
	}
	return fmt.Errorf("invalid log level %q (want one of %s)", s, strings.Join(Levels, ", "))
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DecisionLogger appends one JSON object per pipeline decision to a file.
// Every entry carries the run ID so traces from several runs can share the
// file. It is safe for concurrent use, and a nil *DecisionLogger ignores
// every call.
type DecisionLogger struct {
	mu    sync.Mutex
	file  *os.File
	runID string
}

// NewDecisionLogger opens dir/decisions.jsonl for append. It returns nil at
// info level, or if the file cannot be opened.
func NewDecisionLogger(dir string, level string) *DecisionLogger {
	if ParseLevel(level) == slog.LevelInfo {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "decisions.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}
	return &DecisionLogger{file: f, runID: uuid.NewString()}
}

// RunID returns the identifier stamped on this logger's entries.
func (dl *DecisionLogger) RunID() string {
	if dl == nil {
		return ""
	}
	return dl.runID
}

// Log writes event with "time", "run_id", and "decision" fields added.
// The caller's map is not mutated.
func (dl *DecisionLogger) Log(decision string, event map[string]any) {
	if dl == nil {
		return
	}

	entry := make(map[string]any, len(event)+3)
	for k, v := range event {
		entry[k] = v
	}
	entry["decision"] = decision
	entry["run_id"] = dl.runID
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file == nil {
		return
	}
	_, _ = dl.file.Write(append(data, '\n'))
}

// Close closes the underlying file.
func (dl *DecisionLogger) Close() {
	if dl == nil {
		return
	}
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file != nil {
		dl.file.Close()
		dl.file = nil
	}
}
