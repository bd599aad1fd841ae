package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2html/internal/render"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Task list checkbox inputs, as emitted by goldmark's GFM extension.
var checkboxInput = regexp.MustCompile(`<input[^>]*type="checkbox"[^>]*/?>[ \t]?`)

// checkedAttr finds a checked attribute inside a matched input tag.
var checkedAttr = regexp.MustCompile(`\schecked(?:[\s=/>]|$)`)

// HTMLConverter abstracts Markdown to HTML conversion.
// Implementations return an HTML fragment, not a full document.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// BuiltinConverter converts Markdown with the in-tree renderer.
type BuiltinConverter struct{}

// NewBuiltinConverter creates a BuiltinConverter.
func NewBuiltinConverter() *BuiltinConverter {
	return &BuiltinConverter{}
}

// ToHTML renders content. The renderer itself cannot fail; only a canceled
// context produces an error.
func (c *BuiltinConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return render.Render(content), nil
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
// A non-empty highlightStyle enables syntax highlighting with that chroma
// style, written as inline styles so it survives pasting.
func NewGoldmarkConverter(highlightStyle string) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM,            // Tables, strikethrough, autolinks, task lists
		extension.Footnote,       // [^1] footnotes
		extension.DefinitionList, // term / : definition
	}
	if highlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(highlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // Raw HTML passes through, like the builtin engine
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		fragment := replaceCheckboxes(buf.String())
		done <- result{html: applyCodeBackground(fragment)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// replaceCheckboxes swaps task list inputs for the ballot box characters
// the builtin renderer emits, so both engines produce comparable output.
func replaceCheckboxes(fragment string) string {
	return checkboxInput.ReplaceAllStringFunc(fragment, func(input string) string {
		if checkedAttr.MatchString(input) {
			return "☑ "
		}
		return "☐ "
	})
}
