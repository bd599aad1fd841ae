package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Inline patterns. Emphasis flanking and autolink context are decided by the
// scanners below, not by these expressions.
var (
	imagePattern         = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]*)(?:\s+"([^"]*)")?\)`)
	linkPattern          = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]*)(?:\s+"([^"]*)")?\)`)
	referenceLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\[([^\]]*)\]`)
	strongStarPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strongUnderPattern   = regexp.MustCompile(`__(.+?)__`)
	strikePattern        = regexp.MustCompile(`~~(.+?)~~`)
	codeSpanPattern      = regexp.MustCompile("`([^`]+)`")

	// htmlTag matches one start or end tag, anchored variant for scanners.
	htmlTag         = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>]*)?/?>`)
	htmlTagAtStart  = regexp.MustCompile(`^</?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>]*)?/?>`)
	shieldedPattern = regexp.MustCompile(shieldOpen + `(\d+)` + shieldClose)

	// shieldable also matches a literal shieldOpen rune already in the text,
	// so it is restored as itself instead of being read as a placeholder.
	shieldable = regexp.MustCompile(htmlTag.String() + `|` + shieldOpen)
)

// Tags are hidden behind these Private Use Area runes while the emphasis
// passes run, so markers inside attribute values are never converted.
const (
	shieldOpen  = "\uE000"
	shieldClose = "\uE001"
)

// renderInline applies the inline transforms to a node's text, in order.
func renderInline(text string, refs ReferenceTable) string {
	text = replaceImages(text)
	text = replaceLinks(text)
	text = replaceReferenceLinks(text, refs)
	text = autolink(text)

	text, tags := shieldTags(text)
	text = strongStarPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = strongUnderPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = replaceEmphasis(text)
	text = strikePattern.ReplaceAllString(text, "<del>$1</del>")
	text = codeSpanPattern.ReplaceAllString(text, "<code>$1</code>")
	return unshieldTags(text, tags)
}

// replaceMatches rebuilds s in a single left-to-right copy, substituting
// each match of re with fn's result. When fn declines a match the original
// text is kept. Match bounds from regexp always fall on rune boundaries.
func replaceMatches(s string, re *regexp.Regexp, fn func(groups []string) (string, bool)) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for g := range groups {
			if m[2*g] >= 0 {
				groups[g] = s[m[2*g]:m[2*g+1]]
			}
		}
		repl, ok := fn(groups)
		if !ok {
			continue
		}
		sb.WriteString(s[last:m[0]])
		sb.WriteString(repl)
		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// replaceImages converts ![alt](src "title") to <img>. It runs before link
// conversion, which would otherwise claim the bracketed part.
func replaceImages(s string) string {
	if !strings.Contains(s, "![") {
		return s
	}
	return replaceMatches(s, imagePattern, func(g []string) (string, bool) {
		img := `<img alt="` + escapeAttr(g[1]) + `" src="` + escapeAttr(g[2]) + `"`
		if g[3] != "" {
			img += ` title="` + escapeAttr(g[3]) + `"`
		}
		return img + ">", true
	})
}

func replaceLinks(s string) string {
	if !strings.Contains(s, "](") {
		return s
	}
	return replaceMatches(s, linkPattern, func(g []string) (string, bool) {
		return anchor(g[2], g[3], g[1]), true
	})
}

// replaceReferenceLinks resolves [text][key] against refs. An empty key
// uses the text. Unknown keys leave the brackets as they were.
func replaceReferenceLinks(s string, refs ReferenceTable) string {
	if len(refs) == 0 || !strings.Contains(s, "][") {
		return s
	}
	return replaceMatches(s, referenceLinkPattern, func(g []string) (string, bool) {
		key := g[2]
		if strings.TrimSpace(key) == "" {
			key = g[1]
		}
		url, ok := refs.Lookup(key)
		if !ok {
			return "", false
		}
		return anchor(url, "", g[1]), true
	})
}

func anchor(href, title, text string) string {
	a := `<a href="` + escapeAttr(href) + `"`
	if title != "" {
		a += ` title="` + escapeAttr(title) + `"`
	}
	return a + ">" + text + "</a>"
}

// escapeAttr makes v safe inside a double-quoted attribute.
func escapeAttr(v string) string {
	return strings.ReplaceAll(v, `"`, "&quot;")
}

// autolink turns bare http(s) URLs into anchors. It copies tags through
// untouched and skips text inside an existing <a> element. A URL directly
// after '"' or '=' is treated as an attribute value and left alone.
func autolink(s string) string {
	if !strings.Contains(s, "://") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	inAnchor := false
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if loc := htmlTagAtStart.FindStringIndex(s[i:]); loc != nil {
				tag := s[i : i+loc[1]]
				switch {
				case isTag(tag, "<a"):
					inAnchor = true
				case isTag(tag, "</a"):
					inAnchor = false
				}
				sb.WriteString(tag)
				i += loc[1]
				continue
			}
		}

		if !inAnchor && startsURL(s[i:]) && !afterAttributeDelimiter(s, i) {
			if n := urlLength(s[i:]); n > 0 {
				url := s[i : i+n]
				sb.WriteString(anchor(url, "", url))
				i += n
				continue
			}
		}

		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// isTag reports whether tag starts with prefix followed by '>' or a space.
func isTag(tag, prefix string) bool {
	if len(tag) <= len(prefix) || !strings.EqualFold(tag[:len(prefix)], prefix) {
		return false
	}
	c := tag[len(prefix)]
	return c == '>' || c == ' ' || c == '\t' || c == '\n'
}

func startsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func afterAttributeDelimiter(s string, i int) bool {
	return i > 0 && (s[i-1] == '"' || s[i-1] == '=')
}

// urlLength returns the byte length of the URL at the start of s, or 0 when
// nothing follows the scheme. Trailing sentence punctuation and an
// unbalanced closing parenthesis are not part of the URL.
func urlLength(s string) int {
	end := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '<' || r == '>' || r == '"'
	})
	if end < 0 {
		end = len(s)
	}

	for end > 0 {
		c := s[end-1]
		if strings.IndexByte(".,;:!?'", c) >= 0 {
			end--
			continue
		}
		if c == ')' && strings.Count(s[:end], "(") < strings.Count(s[:end], ")") {
			end--
			continue
		}
		break
	}

	scheme := strings.Index(s, "://") + len("://")
	if end <= scheme {
		return 0
	}
	return end
}

// shieldTags replaces every HTML tag in s with an indexed placeholder and
// returns the tags in placeholder order. Literal shieldOpen runes are
// shielded too.
func shieldTags(s string) (string, []string) {
	if !strings.Contains(s, "<") && !strings.Contains(s, shieldOpen) {
		return s, nil
	}
	var tags []string
	shielded := shieldable.ReplaceAllStringFunc(s, func(tag string) string {
		tags = append(tags, tag)
		return shieldOpen + strconv.Itoa(len(tags)-1) + shieldClose
	})
	return shielded, tags
}

// unshieldTags restores the tags hidden by shieldTags.
func unshieldTags(s string, tags []string) string {
	if len(tags) == 0 {
		return s
	}
	return shieldedPattern.ReplaceAllStringFunc(s, func(p string) string {
		idx, err := strconv.Atoi(p[len(shieldOpen) : len(p)-len(shieldClose)])
		if err != nil || idx >= len(tags) {
			return p
		}
		return tags[idx]
	})
}

// replaceEmphasis converts *text* and _text_ to <em>.
//
// An opening marker must not follow the same marker or a word character and
// must be followed by something other than the marker or a space. A closing
// marker mirrors that: no space or marker before it, no marker or word
// character after it. So "snake_case_word" and "2 * 3 * 4" stay as they are.
func replaceEmphasis(s string) string {
	if !strings.ContainsAny(s, "*_") {
		return s
	}

	// Whether a position closes emphasis depends only on s, so once a scan
	// for a marker runs off the end no later opener of it can close either.
	var exhausted [2]bool

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if (c == '*' || c == '_') && !exhausted[markerIndex(c)] && opensEmphasis(s, i) {
			if j := closingEmphasis(s, i); j > 0 {
				sb.WriteString("<em>")
				sb.WriteString(replaceEmphasis(s[i+1 : j]))
				sb.WriteString("</em>")
				i = j + 1
				continue
			}
			exhausted[markerIndex(c)] = true
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

func markerIndex(c byte) int {
	if c == '_' {
		return 1
	}
	return 0
}

func opensEmphasis(s string, i int) bool {
	marker := rune(s[i])
	prev, next := runeBefore(s, i), runeAt(s, i+1)
	return prev != marker && !isWordRune(prev) &&
		next != noRune && next != marker && !unicode.IsSpace(next)
}

// closingEmphasis returns the index of the marker closing the one at open,
// or -1 when there is none.
func closingEmphasis(s string, open int) int {
	marker := s[open]
	for j := open + 1; j < len(s); j++ {
		if s[j] != marker {
			continue
		}
		prev, next := runeBefore(s, j), runeAt(s, j+1)
		if prev != rune(marker) && !unicode.IsSpace(prev) &&
			next != rune(marker) && !isWordRune(next) {
			return j
		}
	}
	return -1
}

// noRune stands for "no character" at either end of the text.
const noRune = -1

func runeBefore(s string, i int) rune {
	if i <= 0 {
		return noRune
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

func runeAt(s string, i int) rune {
	if i >= len(s) {
		return noRune
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
