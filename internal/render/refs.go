package render

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// referenceDefinition matches a whole "[key]: url" line.
var referenceDefinition = regexp.MustCompile(`^[ \t]*\[([^\]]+)\]:[ \t]+(\S.*)$`)

// ReferenceTable maps case-folded reference keys to URLs.
// It is filled once by ExtractReferences and only read afterwards.
type ReferenceTable map[string]string

// Lookup returns the URL defined for key, ignoring case and surrounding space.
func (t ReferenceTable) Lookup(key string) (string, bool) {
	url, ok := t[foldKey(key)]
	return url, ok
}

// foldKey lowercases a reference key. A Caser holds state, so one is built
// per call instead of being shared.
func foldKey(key string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(key))
}

// ExtractReferences removes link reference definitions from markdown and
// returns the remaining text along with the collected definitions.
//
// Each definition line is replaced by an empty line so it keeps separating
// the blocks around it. When a key is defined more than once, the definition
// that appears first in the document wins; later ones are dropped silently.
// Lines inside closed fenced code blocks are left untouched.
func ExtractReferences(markdown string) (string, ReferenceTable) {
	refs := ReferenceTable{}
	if !strings.Contains(markdown, "]:") {
		return markdown, refs
	}

	lines := strings.Split(markdown, "\n")
	for i := 0; i < len(lines); i++ {
		if marker, _, ok := openFence(lines[i]); ok {
			if end, closed := findFenceClose(lines, i, marker); closed {
				i = end
				continue
			}
		}

		m := referenceDefinition.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		key := foldKey(m[1])
		if key == "" {
			continue
		}
		if _, seen := refs[key]; !seen {
			refs[key] = strings.TrimSpace(m[2])
		}
		lines[i] = ""
	}

	return strings.Join(lines, "\n"), refs
}
