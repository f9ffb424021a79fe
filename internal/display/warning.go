// Package display formats user-facing CLI output: load summaries and
// warnings. Color is applied only when writing to a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string // Main warning title
	Message    string // Detailed explanation (optional)
	Suggestion string // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// TruncationWarning builds the warning shown when the file cap cut a walk
// short.
func TruncationWarning(maxFiles int) Warning {
	return Warning{
		Title:      fmt.Sprintf("Result truncated at %d files", maxFiles),
		Message:    "The walk stopped before visiting the rest of the tree.",
		Suggestion: "Narrow the path or add an ?ext= filter, or raise --max-files.",
	}
}
