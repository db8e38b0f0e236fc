// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// JSON writes indented JSON to w.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table creates an aligned table writer for w.
// Remember to call Flush() when done writing.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Warn prints a warning message to w.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, color.YellowString("Warning: ")+format+"\n", args...)
}

// Header renders table column names in bold cyan.
var Header = color.New(color.FgCyan, color.Bold).SprintFunc()

// Success renders a success line in green.
var Success = color.New(color.FgGreen).SprintfFunc()

// Failure renders an error line in red.
var Failure = color.New(color.FgRed).SprintfFunc()

// DisableColor turns off ANSI colors for all output.
func DisableColor() {
	color.NoColor = true
}
