package render

import "strings"

// lineEndings normalizes \r\n and lone \r to \n.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Render converts markdown to an HTML fragment.
func Render(markdown string) string {
	text, refs := ExtractReferences(lineEndings.Replace(markdown))
	return renderBlocks(parseBlocks(text), refs)
}
