package parser

import (
	"iter"
	"strings"

	"github.com/harrison/doccheck/internal/models"
)

const (
	sourceMarkerPrefix = "[source,"
	blockDelimiter     = "----"
)

// scanState is the position of the AsciiDoc scanner relative to a source block
type scanState int

const (
	seekingMarker scanState = iota
	seekingDelimiter
	capturingBody
)

// AsciiDocExtractor finds listing blocks declared as [source,bash] or [source,sh]:
//
//	[source,bash]
//	----
//	echo "hello"
//	----
//
// Scanning is a line-at-a-time state machine, so input size never causes
// backtracking and the reported line is an explicit counter.
type AsciiDocExtractor struct{}

// NewAsciiDocExtractor returns an AsciiDoc extractor
func NewAsciiDocExtractor() *AsciiDocExtractor {
	return &AsciiDocExtractor{}
}

// Extract implements Extractor.
// Line is the 1-based line of the [source,...] marker. The body keeps every
// line's trailing newline; CRLF endings are normalized to LF. Empty bodies
// are skipped. A marker still open at end of input yields *UnterminatedError.
func (e *AsciiDocExtractor) Extract(path string, content []byte) iter.Seq2[models.ScriptBlock, error] {
	return func(yield func(models.ScriptBlock, error) bool) {
		state := seekingMarker
		lineNo := 0

		var (
			markerLine int
			dialect    string
			body       strings.Builder
		)

		for raw := range strings.Lines(string(content)) {
			lineNo++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

			switch state {
			case seekingDelimiter:
				if line == blockDelimiter {
					state = capturingBody
					body.Reset()
					continue
				}
				// Not a listing block; this line may open the next one
				state = seekingMarker
				fallthrough

			case seekingMarker:
				if d, ok := parseSourceMarker(line); ok {
					state = seekingDelimiter
					markerLine = lineNo
					dialect = d
				}

			case capturingBody:
				if line != blockDelimiter {
					body.WriteString(line)
					body.WriteByte('\n')
					continue
				}
				state = seekingMarker
				if body.Len() == 0 {
					continue
				}
				block := models.ScriptBlock{
					Path:    path,
					Line:    markerLine,
					Dialect: dialect,
					Script:  body.String(),
				}
				if !yield(block, nil) {
					return
				}
			}
		}

		if state == capturingBody {
			yield(models.ScriptBlock{}, &UnterminatedError{Path: path, Line: markerLine})
		}
	}
}

// parseSourceMarker matches a line that is exactly "[source,bash]" or
// "[source,sh]", allowing whitespace after the comma
func parseSourceMarker(line string) (string, bool) {
	if !strings.HasPrefix(line, sourceMarkerPrefix) || !strings.HasSuffix(line, "]") {
		return "", false
	}
	lang := line[len(sourceMarkerPrefix) : len(line)-1]
	lang = strings.TrimLeft(lang, " \t")
	if !models.IsShellDialect(lang) {
		return "", false
	}
	return lang, true
}
