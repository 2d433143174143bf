package parser

import (
	"bytes"
	"iter"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/doccheck/internal/models"
)

// MarkdownExtractor finds fenced code blocks whose info string declares bash or sh
type MarkdownExtractor struct {
	markdown goldmark.Markdown
}

// NewMarkdownExtractor returns a Markdown extractor backed by goldmark
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		markdown: goldmark.New(),
	}
}

// Extract implements Extractor. Line is the 1-based line of the opening fence.
func (e *MarkdownExtractor) Extract(path string, content []byte) iter.Seq2[models.ScriptBlock, error] {
	return func(yield func(models.ScriptBlock, error) bool) {
		doc := e.markdown.Parser().Parse(text.NewReader(content))

		var blocks []models.ScriptBlock
		ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			fenced, ok := n.(*ast.FencedCodeBlock)
			if !ok {
				return ast.WalkContinue, nil
			}

			lang := string(fenced.Language(content))
			if !models.IsShellDialect(lang) {
				return ast.WalkSkipChildren, nil
			}

			lines := fenced.Lines()
			if lines.Len() == 0 {
				return ast.WalkSkipChildren, nil
			}

			var body strings.Builder
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				body.Write(segment.Value(content))
			}

			script := strings.ReplaceAll(body.String(), "\r\n", "\n")
			if script == "" {
				return ast.WalkSkipChildren, nil
			}

			// The fence sits on the line before the first body line
			firstBodyLine := bytes.Count(content[:lines.At(0).Start], []byte("\n")) + 1
			blocks = append(blocks, models.ScriptBlock{
				Path:    path,
				Line:    firstBodyLine - 1,
				Dialect: lang,
				Script:  script,
			})
			return ast.WalkSkipChildren, nil
		})

		for _, block := range blocks {
			if !yield(block, nil) {
				return
			}
		}
	}
}
