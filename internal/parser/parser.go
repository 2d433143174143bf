package parser

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/harrison/doccheck/internal/models"
)

// Format represents the markup format of a documentation file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatAsciiDoc represents an AsciiDoc (.adoc, .asciidoc, .asc) file
	FormatAsciiDoc
	// FormatMarkdown represents a Markdown (.md, .markdown) file
	FormatMarkdown
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatAsciiDoc:
		return "asciidoc"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Extractor finds shell script blocks in the content of one documentation file.
//
// The returned sequence yields blocks in document order. A non-nil error is
// yielded for malformed input that does not stop extraction; callers decide
// whether to warn or fail. Zero blocks is an empty sequence, not an error.
type Extractor interface {
	Extract(path string, content []byte) iter.Seq2[models.ScriptBlock, error]
}

// UnterminatedError reports a source marker whose body never reached a closing delimiter
type UnterminatedError struct {
	Path string
	Line int
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated shell script block at %s:%d", e.Path, e.Line)
}

// DetectFormat detects the documentation format based on file extension
// Supported extensions:
//   - .adoc, .asciidoc, .asc -> FormatAsciiDoc
//   - .md, .markdown -> FormatMarkdown
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".adoc", ".asciidoc", ".asc":
		return FormatAsciiDoc
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// NewExtractor creates an extractor for the specified format
// Returns an error if the format is unknown or unsupported
func NewExtractor(format Format) (Extractor, error) {
	switch format {
	case FormatAsciiDoc:
		return NewAsciiDocExtractor(), nil
	case FormatMarkdown:
		return NewMarkdownExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ForPath returns the extractor matching the extension of path
func ForPath(path string) (Extractor, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported documentation file %s: unknown extension %q", path, filepath.Ext(path))
	}
	return NewExtractor(format)
}
