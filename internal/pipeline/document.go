package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"
)

// DefaultTitle is used when neither a title nor a heading is available.
const DefaultTitle = "Document"

var (
	// The first level 1 heading. Captures its inner HTML.
	firstHeading = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)

	// htmlTagPattern matches HTML tags for stripping from heading text.
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// DocumentWrapper defines the contract for turning a fragment into a
// standalone HTML document.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, fragment, title, css string) string
}

// HTMLDocument wraps fragments in an HTML5 document styled like GitHub's
// rendered Markdown.
type HTMLDocument struct{}

// WrapDocument returns a complete document around fragment.
// An empty title falls back to the text of the first <h1>, then to
// DefaultTitle. CSS is inlined in a <style> block; empty css emits none.
// A canceled ctx returns the fragment unchanged.
func (d *HTMLDocument) WrapDocument(ctx context.Context, fragment, title, css string) string {
	if ctx.Err() != nil {
		return fragment
	}
	if title == "" {
		title = TitleFromFragment(fragment)
	}

	var sb strings.Builder
	sb.Grow(len(fragment) + len(css) + 256)
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	if css != "" {
		sb.WriteString("<style>\n" + sanitizeCSS(css) + "\n</style>\n")
	}
	sb.WriteString("</head>\n<body class=\"markdown-body\">\n")
	sb.WriteString(fragment)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

// TitleFromFragment returns the plain text of the first <h1> in fragment,
// or DefaultTitle when there is none.
func TitleFromFragment(fragment string) string {
	if m := firstHeading.FindStringSubmatch(fragment); m != nil {
		if text := stripHTMLTags(m[1]); text != "" {
			return text
		}
	}
	return DefaultTitle
}

// stripHTMLTags removes HTML tags from a string, decodes HTML entities,
// and trims whitespace. Decoding first avoids double-encoding when the
// text is escaped again for the <title>.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
