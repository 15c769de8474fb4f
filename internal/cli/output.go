package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Output destinations, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// stdoutIsTerminal reports whether colored output makes sense.
func stdoutIsTerminal() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printMarked prints msg prefixed with mark, colored unless disabled.
func printMarked(w io.Writer, color, mark, msg string) {
	if globalNoColor {
		fmt.Fprintf(w, "%s %s\n", mark, msg)
		return
	}
	fmt.Fprintf(w, "%s%s%s %s\n", color, mark, colorReset, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	printMarked(stdout, colorGreen, "✓", msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	printMarked(stdout, colorYellow, "⚠", msg)
}

// printErrorMsg prints an error message to stderr regardless of --quiet.
func printErrorMsg(msg string) {
	printMarked(stderr, colorRed, "✗", msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	printMarked(stdout, colorBlue, "→", msg)
}

// printDetail prints an indented secondary line in gray.
func printDetail(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Fprintf(stdout, "  %s\n", msg)
		return
	}
	fmt.Fprintf(stdout, "  %s%s%s\n", colorGray, msg, colorReset)
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
