package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrInvalidHighlightStyle indicates the chroma style name is not registered.
var ErrInvalidHighlightStyle = errors.New("unknown highlight style")

// githubPreStyle matches GitHub's light code block background. It is inline
// because rich text editors drop stylesheets and classes on paste.
const githubPreStyle = `<pre style="background-color:#f6f8fa;padding:16px;border-radius:6px;overflow:auto;font-family:monospace;">`

var (
	// A fenced block with a language class, as emitted by the builtin engine.
	languageCodeBlock = regexp.MustCompile(`(?s)<pre><code class="language-([^"]+)">(.*?)</code></pre>`)

	// The background chroma writes on <pre> when highlighting.
	preBackground = regexp.MustCompile(`<pre[^>]*\sstyle="[^"]*background-color:[^"]*"[^>]*>`)
)

// Languages handed on untouched to downstream renderers.
var passthroughLanguages = map[string]bool{
	"math":    true,
	"mermaid": true,
}

// CodeHighlighter defines the contract for highlighting code blocks in a fragment.
type CodeHighlighter interface {
	Highlight(ctx context.Context, fragment string) (string, error)
}

// ChromaHighlighter highlights fenced code blocks with chroma inline styles.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// An empty name selects DefaultHighlightStyle.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	if !IsHighlightStyle(styleName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, styleName)
	}

	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// IsHighlightStyle reports whether name is a registered chroma style.
func IsHighlightStyle(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// Highlight re-renders every code block whose language chroma knows.
// Blocks without a language, with an unknown language, or tagged math or
// mermaid are left as they are. Code content is expected raw, the way the
// builtin engine emits it.
func (h *ChromaHighlighter) Highlight(ctx context.Context, fragment string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !strings.Contains(fragment, `<code class="language-`) {
		return fragment, nil
	}

	var firstErr error
	out := languageCodeBlock.ReplaceAllStringFunc(fragment, func(block string) string {
		m := languageCodeBlock.FindStringSubmatch(block)
		lang, code := html.UnescapeString(m[1]), m[2]
		if passthroughLanguages[strings.ToLower(lang)] {
			return block
		}
		lexer := lexers.Get(lang)
		if lexer == nil {
			return block
		}

		highlighted, err := h.format(chroma.Coalesce(lexer), code)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return block
		}
		return githubPreStyle + `<code class="language-` + m[1] + `">` + highlighted + "</code></pre>"
	})
	if firstErr != nil {
		return "", fmt.Errorf("highlighting code: %w", firstErr)
	}
	return out, nil
}

func (h *ChromaHighlighter) format(lexer chroma.Lexer, code string) (string, error) {
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// applyCodeBackground replaces the background chroma puts on <pre> with
// GitHub's code block style.
func applyCodeBackground(fragment string) string {
	return preBackground.ReplaceAllLiteralString(fragment, githubPreStyle)
}
