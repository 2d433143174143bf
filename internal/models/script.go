package models

import "fmt"

// Shell dialects recognized in documentation source blocks
const (
	DialectBash = "bash"
	DialectSh   = "sh"
)

// ScriptBlock is one shell script extracted from a documentation file
type ScriptBlock struct {
	Path    string // Documentation file the block was found in
	Line    int    // 1-based line of the block's opening marker
	Dialect string // "bash" or "sh"
	Script  string // Verbatim script body, including the trailing newline
}

// Location returns "path:line" as printed in reports
func (b ScriptBlock) Location() string {
	return fmt.Sprintf("%s:%d", b.Path, b.Line)
}

// IsShellDialect reports whether lang names a dialect the checker understands.
func IsShellDialect(lang string) bool {
	return lang == DialectBash || lang == DialectSh
}

// UnterminatedBlock records a marker whose body was never closed
type UnterminatedBlock struct {
	Path string
	Line int
}
