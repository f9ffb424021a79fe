package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/fragments/internal/fragment"
)

// summaryScheme defines the colors used in load summaries.
type summaryScheme struct {
	label *color.Color
	value *color.Color
	dim   *color.Color
}

func newSummaryScheme() *summaryScheme {
	return &summaryScheme{
		label: color.New(color.FgCyan),
		value: color.New(color.FgGreen),
		dim:   color.New(color.Faint),
	}
}

// IsTerminal reports whether the writer is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Summary prints a per-load overview: root, fragment count, and total bytes.
// Colors are suppressed when out is not a terminal.
func Summary(out io.Writer, root string, fragments []fragment.Fragment) {
	scheme := newSummaryScheme()
	plain := !IsTerminal(out)
	if plain {
		scheme.label.DisableColor()
		scheme.value.DisableColor()
		scheme.dim.DisableColor()
	}

	var totalBytes int
	for _, f := range fragments {
		totalBytes += len(f.Content)
	}

	fmt.Fprintf(out, "%s %s\n", scheme.label.Sprint("root:"), root)
	fmt.Fprintf(out, "%s %s  %s %s\n",
		scheme.label.Sprint("fragments:"),
		scheme.value.Sprintf("%d", len(fragments)),
		scheme.label.Sprint("bytes:"),
		scheme.value.Sprintf("%d", totalBytes),
	)
}

// Sources prints one line per fragment source identifier.
func Sources(out io.Writer, fragments []fragment.Fragment) {
	scheme := newSummaryScheme()
	if !IsTerminal(out) {
		scheme.dim.DisableColor()
	}
	for _, f := range fragments {
		fmt.Fprintln(out, scheme.dim.Sprint(f.Source))
	}
}

// TotalBytes sums the content sizes of the given fragments.
func TotalBytes(fragments []fragment.Fragment) int64 {
	var total int64
	for _, f := range fragments {
		total += int64(len(f.Content))
	}
	return total
}
