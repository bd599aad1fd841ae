package render

import (
	"strconv"
	"strings"
)

// blockKind classifies a node in the block sequence.
type blockKind int

const (
	textLine       blockKind = iota // source line not claimed by any pass yet
	codeBlock                       // fenced code, content kept verbatim
	quoteBlock                      // flattened blockquote
	headingBlock                    // ATX heading, level 1-6
	ruleBlock                       // horizontal rule
	tableBlock                      // header, alignments and body rows
	listBlock                       // open/close/item events of one list run
	paragraphBlock                  // joined run of plain lines
	htmlLine                        // line already starting with markup
)

const maxHeadingLevel = 6

// block is one logical node. Which fields are set depends on kind.
type block struct {
	kind  blockKind
	text  string
	lang  string
	level int
	table *table
	list  []listEvent
}

// blockPasses run in order over the node sequence produced by splitFences.
// Each pass only claims textLine nodes and leaves the others in place.
var blockPasses = []func([]block) []block{
	groupBlockquotes,
	markHeadings,
	markRules,
	groupTables,
	groupLists,
	groupParagraphs,
}

// parseBlocks turns text into a sequence of block nodes.
func parseBlocks(text string) []block {
	blocks := splitFences(strings.Split(text, "\n"))
	for _, pass := range blockPasses {
		blocks = pass(blocks)
	}
	return blocks
}

// openFence reports whether line opens a fenced code block.
// It returns the backtick run and the language tag, if any.
func openFence(line string) (marker, lang string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	n := countPrefix(trimmed, '`')
	if n < 3 {
		return "", "", false
	}
	info := strings.TrimSpace(trimmed[n:])
	if strings.Contains(info, "`") {
		return "", "", false
	}
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		info = info[:i]
	}
	return trimmed[:n], info, true
}

// closesFence reports whether line is a backtick run at least as long as marker.
func closesFence(line, marker string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= len(marker) && countPrefix(trimmed, '`') == len(trimmed)
}

// findFenceClose returns the index of the line closing the fence opened at
// lines[start].
func findFenceClose(lines []string, start int, marker string) (int, bool) {
	for j := start + 1; j < len(lines); j++ {
		if closesFence(lines[j], marker) {
			return j, true
		}
	}
	return 0, false
}

// ClosedFence reports whether lines[i] opens a fenced code block that is
// closed later, and returns the index of the closing line.
func ClosedFence(lines []string, i int) (end int, ok bool) {
	marker, _, opens := openFence(lines[i])
	if !opens {
		return 0, false
	}
	return findFenceClose(lines, i, marker)
}

// splitFences is the first block pass. Closed fences become code nodes;
// every other line, including an unterminated opening fence, becomes a
// textLine node.
func splitFences(lines []string) []block {
	blocks := make([]block, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if marker, lang, ok := openFence(lines[i]); ok {
			if end, closed := findFenceClose(lines, i, marker); closed {
				blocks = append(blocks, block{
					kind: codeBlock,
					lang: lang,
					text: strings.Join(lines[i+1:end], "\n"),
				})
				i = end
				continue
			}
		}
		blocks = append(blocks, block{kind: textLine, text: lines[i]})
	}
	return blocks
}

// groupBlockquotes folds each run of ">" lines into one quote node.
func groupBlockquotes(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	for i := 0; i < len(blocks); {
		if !isQuoteLine(blocks[i]) {
			out = append(out, blocks[i])
			i++
			continue
		}

		var parts []string
		for ; i < len(blocks) && isQuoteLine(blocks[i]); i++ {
			if part := stripQuoteMarker(blocks[i].text); part != "" {
				parts = append(parts, part)
			}
		}
		out = append(out, block{kind: quoteBlock, text: strings.Join(parts, " ")})
	}
	return out
}

func isQuoteLine(b block) bool {
	return b.kind == textLine && strings.HasPrefix(b.text, ">")
}

// stripQuoteMarker removes the ">" and at most one following space.
func stripQuoteMarker(line string) string {
	line = strings.TrimPrefix(line, ">")
	line = strings.TrimPrefix(line, " ")
	return strings.TrimRight(line, " \t")
}

func markHeadings(blocks []block) []block {
	for i, b := range blocks {
		if b.kind != textLine {
			continue
		}
		if level, text, ok := parseHeading(b.text); ok {
			blocks[i] = block{kind: headingBlock, level: level, text: text}
		}
	}
	return blocks
}

// parseHeading matches exactly level '#' characters, one space, then text.
// Counting the whole run means "## x" can never be read as a level 1
// heading with text "# x".
func parseHeading(line string) (level int, text string, ok bool) {
	n := countPrefix(line, '#')
	if n < 1 || n > maxHeadingLevel {
		return 0, "", false
	}
	if len(line) == n || line[n] != ' ' {
		return 0, "", false
	}
	text = strings.TrimSpace(line[n+1:])
	if text == "" {
		return 0, "", false
	}
	return n, text, true
}

func markRules(blocks []block) []block {
	for i, b := range blocks {
		if b.kind == textLine && isRule(b.text) {
			blocks[i] = block{kind: ruleBlock}
		}
	}
	return blocks
}

// isRule reports whether line is three or more of the same '-', '*' or '_'.
func isRule(line string) bool {
	line = strings.TrimRight(line, " \t")
	if len(line) < 3 {
		return false
	}
	c := line[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	return countPrefix(line, c) == len(line)
}

// groupParagraphs wraps each run of plain lines into one paragraph node.
// Blank lines stay as empty textLine nodes; lines starting with '<' are
// passed through as markup.
func groupParagraphs(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	var pending []string
	flush := func() {
		if len(pending) == 0 {
			return
		}
		out = append(out, block{kind: paragraphBlock, text: strings.Join(pending, " ")})
		pending = nil
	}

	for _, b := range blocks {
		if b.kind != textLine {
			flush()
			out = append(out, b)
			continue
		}
		line := strings.TrimSpace(b.text)
		switch {
		case line == "":
			flush()
			out = append(out, block{kind: textLine})
		case strings.HasPrefix(line, "<"):
			flush()
			out = append(out, block{kind: htmlLine, text: b.text})
		default:
			pending = append(pending, line)
		}
	}
	flush()
	return out
}

// renderBlocks writes every node as HTML, one node per output line.
// Inline transforms run on node text only; code content is never touched.
func renderBlocks(blocks []block, refs ReferenceTable) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch b.kind {
		case codeBlock:
			sb.WriteString("<pre><code")
			if b.lang != "" {
				sb.WriteString(` class="language-`)
				sb.WriteString(escapeAttr(b.lang))
				sb.WriteByte('"')
			}
			sb.WriteByte('>')
			sb.WriteString(b.text)
			sb.WriteString("</code></pre>")
		case quoteBlock:
			sb.WriteString("<blockquote><p>")
			sb.WriteString(renderInline(b.text, refs))
			sb.WriteString("</p></blockquote>")
		case headingBlock:
			tag := "h" + strconv.Itoa(b.level)
			sb.WriteString("<" + tag + ">")
			sb.WriteString(renderInline(b.text, refs))
			sb.WriteString("</" + tag + ">")
		case ruleBlock:
			sb.WriteString("<hr>")
		case tableBlock:
			b.table.render(&sb, refs)
		case listBlock:
			renderList(&sb, b.list, refs)
		case paragraphBlock:
			sb.WriteString("<p>")
			sb.WriteString(renderInline(b.text, refs))
			sb.WriteString("</p>")
		case htmlLine:
			sb.WriteString(renderInline(b.text, refs))
		}
	}
	return sb.String()
}

// countPrefix returns how many leading bytes of s equal c.
func countPrefix(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
