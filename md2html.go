package md2html

import "github.com/alnah/go-md2html/internal/render"

// Render converts Markdown to an HTML fragment with the builtin engine.
// It never fails: malformed syntax is passed through as text. Render does
// no preprocessing, highlighting, or wrapping; use a Converter for those.
func Render(markdown string) string {
	return render.Render(markdown)
}
