package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/overlap/internal/dragselect"
	"github.com/javiermolinar/overlap/internal/event"
	"github.com/javiermolinar/overlap/internal/grid"
	"github.com/javiermolinar/overlap/internal/slot"
)

// DebugLogger logs TUI state, input, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "overlap-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	return initDebugLoggerAt(DebugLogPath, enabled)
}

func initDebugLoggerAt(logPath string, enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
		debugLog.file = nil
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogPointer logs a mouse event after hit-testing.
func LogPointer(msg tea.MouseMsg, ev dragselect.PointerEvent, handled bool) {
	if !debugEnabled() {
		return
	}
	debugLog.log("POINTER", map[string]any{
		"x":       msg.X,
		"y":       msg.Y,
		"mouse":   msg.String(),
		"action":  int(ev.Action),
		"row":     ev.Row,
		"col":     ev.Col,
		"handled": handled,
	})
}

// LogModeChange logs a grid mode change.
func LogModeChange(from, to grid.Mode, reason string) {
	if !debugEnabled() {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	})
}

// LogDragCommit logs the slots a finished drag added or removed.
func LogDragCommit(mode dragselect.Mode, keys []slot.Slot) {
	if !debugEnabled() {
		return
	}
	debugLog.log("DRAG_COMMIT", map[string]any{
		"mode":  mode.String(),
		"count": len(keys),
		"slots": truncateSlots(keys, 8),
	})
}

// LogLoad logs freshly loaded event data.
func LogLoad(d *event.Data) {
	if !debugEnabled() || d == nil {
		return
	}
	debugLog.log("LOAD", map[string]any{
		"event_id":  d.Event.ID,
		"name":      truncateStr(d.Event.Name, 30),
		"dates":     len(d.Event.Dates),
		"responses": len(d.Responses),
	})
}

// LogSave logs an optimistic save and its outcome.
func LogSave(req event.SaveRequest, phase string, err error) {
	if !debugEnabled() {
		return
	}
	data := map[string]any{
		"phase":    phase,
		"event_id": req.EventID,
		"alias":    req.Alias,
		"slots":    len(req.Availabilities),
	}
	if err != nil {
		data["error"] = err.Error()
	}
	debugLog.log("SAVE", data)
}

// LogError logs an error.
func LogError(context string, err error) {
	if !debugEnabled() {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// truncateStr truncates a string to max length.
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func truncateSlots(keys []slot.Slot, max int) []string {
	out := make([]string, 0, min(len(keys), max))
	for i, k := range keys {
		if i == max {
			out = append(out, fmt.Sprintf("+%d more", len(keys)-max))
			break
		}
		out = append(out, string(k))
	}
	return out
}
