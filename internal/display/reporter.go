package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/doccheck/internal/config"
	"github.com/harrison/doccheck/internal/models"
)

// Options configures a Reporter
type Options struct {
	Verbose bool   // Print every block before checking it, and a final summary
	Color   string // config.ColorAlways, ColorAuto or ColorNever; empty means always
}

// Reporter prints scan progress and failures
type Reporter struct {
	out       io.Writer
	errOut    io.Writer
	verbose   bool
	highlight *color.Color
	warn      *color.Color
}

// NewReporter creates a Reporter writing results to out and warnings to errOut.
// A nil writer discards its output.
func NewReporter(out, errOut io.Writer, opts Options) *Reporter {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	r := &Reporter{
		out:       out,
		errOut:    errOut,
		verbose:   opts.Verbose,
		highlight: color.New(color.Bold, color.FgRed),
		warn:      color.New(color.FgYellow),
	}

	if useColor(opts.Color, out) {
		r.highlight.EnableColor()
	} else {
		r.highlight.DisableColor()
	}
	if useColor(opts.Color, errOut) {
		r.warn.EnableColor()
	} else {
		r.warn.DisableColor()
	}
	return r
}

// useColor resolves a color mode for one writer
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAuto:
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	default:
		return true
	}
}

// Checking announces a block before it is checked (verbose mode only)
func (r *Reporter) Checking(block models.ScriptBlock) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "Checking shell script at %s\n", block.Location())
}

// Result prints a failed check; passing checks print nothing
func (r *Reporter) Result(result models.CheckResult) {
	if result.Passed {
		return
	}
	fmt.Fprint(r.out, r.FormatFailure(result))
}

// FormatFailure renders a failed check with every line highlighted:
//
//	Invalid shell script at docs/install.adoc:12:
//	  <diagnostic line>
func (r *Reporter) FormatFailure(result models.CheckResult) string {
	var b strings.Builder

	b.WriteString(r.highlight.Sprintf("Invalid shell script at %s:", result.Block.Location()))
	b.WriteString("\n")

	diagnostics := strings.TrimSpace(result.Diagnostics)
	if diagnostics == "" {
		return b.String()
	}
	for _, line := range strings.Split(diagnostics, "\n") {
		b.WriteString(r.highlight.Sprint(indent(line, "  ")))
		b.WriteString("\n")
	}
	return b.String()
}

// Unterminated warns about a source block that is never closed
func (r *Reporter) Unterminated(block models.UnterminatedBlock) {
	w := Warning{
		Title:      fmt.Sprintf("Unterminated shell script block at %s:%d", block.Path, block.Line),
		Message:    "The listing opened after this marker has no closing ---- line, so it was not checked",
		Suggestion: "Close the block with a line containing exactly ----",
	}
	w.displayWith(r.errOut, r.warn)
}

// Summary prints the scan totals (verbose mode only)
func (r *Reporter) Summary(summary *models.Summary) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "Checked %d shell script(s) in %d file(s), %d failed (%s)\n",
		summary.BlocksChecked, summary.FilesScanned, summary.Failed(), formatDuration(summary.Duration))
}

// indent prefixes lines containing non-whitespace; blank lines stay empty
func indent(line, prefix string) string {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return ""
	}
	return prefix + line
}

// formatDuration formats a duration for the summary line
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return d.Round(time.Second).String()
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
