// Package debug writes timestamped diagnostic lines to stderr when the
// --debug flag is set.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// emit writes one debug line. plain is used when color is disabled,
// colored gets the cyan tag and gray timestamp prepended.
func emit(plain, colored string) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	if noColor {
		fmt.Fprintf(out, "[DEBUG] %s %s\n", ts, plain)
		return
	}
	fmt.Fprintf(out, "%s[DEBUG]%s %s%s%s %s\n",
		colorCyan, colorReset, colorGray, ts, colorReset, colored)
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	emit(msg, msg)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	emit("=== "+section+" ===", colorCyan+"=== "+section+" ==="+colorReset)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	emit(fmt.Sprintf("%s = %v", key, value),
		fmt.Sprintf("%s%s%s = %v", colorCyan, key, colorReset, value))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(key+":\n"+string(data),
		colorCyan+key+colorReset+":\n"+string(data))
}
