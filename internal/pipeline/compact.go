package pipeline

import (
	"regexp"
	"strings"
)

var (
	// A whole code block, split into opening tags, content, closing tags.
	preCodeBlock = regexp.MustCompile(`(?s)(<pre[^>]*><code[^>]*>)(.*?)(</code></pre>)`)

	// A final <br>, possibly followed by highlighter span closers.
	trailingBreak = regexp.MustCompile(`<br>((?:</span>)*)$`)

	// Whitespace between two tags.
	interTagWhitespace = regexp.MustCompile(`>\s+<`)
)

// Compact rewrites a fragment so that it keeps its layout when pasted into
// rich text editors, which tend to drop bare newlines. Newlines inside code
// blocks become <br>, except a final one. Outside code blocks, whitespace
// between tags is removed and remaining newlines become spaces. Indentation
// inside code blocks is kept.
func Compact(fragment string) string {
	var sb strings.Builder
	sb.Grow(len(fragment))

	last := 0
	for _, m := range preCodeBlock.FindAllStringSubmatchIndex(fragment, -1) {
		sb.WriteString(collapseWhitespace(fragment[last:m[0]], last > 0, true))

		content := strings.ReplaceAll(fragment[m[4]:m[5]], "\n", "<br>")
		content = trailingBreak.ReplaceAllString(content, "$1")
		sb.WriteString(fragment[m[2]:m[3]])
		sb.WriteString(content)
		sb.WriteString(fragment[m[6]:m[7]])
		last = m[1]
	}
	sb.WriteString(collapseWhitespace(fragment[last:], last > 0, false))
	return sb.String()
}

// collapseWhitespace compacts the text between code blocks. afterTag and
// beforeTag report whether s is preceded or followed by a code block, so
// whitespace touching those tags goes too.
func collapseWhitespace(s string, afterTag, beforeTag bool) string {
	const space = " \t\r\n"
	if afterTag {
		if t := strings.TrimLeft(s, space); t == "" || t[0] == '<' {
			s = t
		}
	}
	if beforeTag {
		if t := strings.TrimRight(s, space); t == "" || t[len(t)-1] == '>' {
			s = t
		}
	}
	s = interTagWhitespace.ReplaceAllString(s, "><")
	return strings.ReplaceAll(s, "\n", " ")
}
