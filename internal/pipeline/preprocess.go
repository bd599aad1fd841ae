package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/alnah/go-md2html/internal/render"
)

// byteOrderMark is the UTF-8 encoding of U+FEFF.
const byteOrderMark = "\uFEFF"

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourcePreprocessor cleans up Markdown read from files or stdin before it
// reaches an engine.
type SourcePreprocessor struct{}

// PreprocessMarkdown strips a leading BOM, normalizes line endings and
// collapses runs of blank lines. A canceled ctx returns content unchanged.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive empty lines to one. Closed fenced
// code blocks are copied as written.
func compressBlankLines(content string) string {
	if !strings.Contains(content, "\n\n\n") {
		return content
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for i := 0; i < len(lines); i++ {
		if end, ok := render.ClosedFence(lines, i); ok {
			out = append(out, lines[i:end+1]...)
			blank = false
			i = end
			continue
		}
		if lines[i] == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, lines[i])
	}
	return strings.Join(out, "\n")
}
