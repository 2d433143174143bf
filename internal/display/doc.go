// Package display renders doccheck results for humans and CI log viewers.
//
// Reporter writes the per-block output of a scan:
//
//	reporter := display.NewReporter(os.Stdout, os.Stderr, display.Options{
//	    Verbose: true,
//	    Color:   "always",
//	})
//	reporter.Checking(block)
//	reporter.Result(result)
//	reporter.Summary(summary)
//
// Failures are printed as a header line followed by the linter diagnostics
// indented two spaces. Every line is wrapped in its own bold-red escape
// sequence: log renderers such as GitHub Actions reset styling at each
// newline, so a single escape at the start of the block would only color
// its first line.
//
// Warning renders the yellow warning box used for non-fatal problems such
// as a source block that is never closed.
//
// All functions accept io.Writer interfaces for testability.
package display
