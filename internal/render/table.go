package render

import "strings"

// alignment is the per-column alignment declared in a separator row.
type alignment int

const (
	alignNone alignment = iota
	alignCenter
	alignRight
)

// attr returns the style attribute for a cell, or "" when none applies.
func (a alignment) attr() string {
	switch a {
	case alignCenter:
		return ` style="text-align:center"`
	case alignRight:
		return ` style="text-align:right"`
	default:
		return ""
	}
}

// table holds a parsed table. Rows keep whatever cells they had; nothing is
// padded or cut to the header's width.
type table struct {
	header []string
	align  []alignment
	rows   [][]string
}

// groupTables claims a "|" line followed by a "|" line containing "-",
// plus every following "|" line as the body.
func groupTables(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	for i := 0; i < len(blocks); i++ {
		if !startsTable(blocks, i) {
			out = append(out, blocks[i])
			continue
		}

		t := &table{
			header: splitRow(blocks[i].text),
			align:  parseAlignments(blocks[i+1].text),
		}
		j := i + 2
		for ; j < len(blocks) && isTableRow(blocks[j]); j++ {
			t.rows = append(t.rows, splitRow(blocks[j].text))
		}
		out = append(out, block{kind: tableBlock, table: t})
		i = j - 1
	}
	return out
}

func startsTable(blocks []block, i int) bool {
	return i+1 < len(blocks) &&
		isTableRow(blocks[i]) &&
		isTableRow(blocks[i+1]) &&
		strings.Contains(blocks[i+1].text, "-")
}

func isTableRow(b block) bool {
	return b.kind == textLine && strings.Contains(b.text, "|")
}

// splitRow splits a row on "|" and trims each cell. The empty cells produced
// by a leading or trailing delimiter are dropped; inner empty cells stay.
func splitRow(line string) []string {
	cells := strings.Split(strings.TrimSpace(line), "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// parseAlignments reads column alignments from a separator row.
func parseAlignments(line string) []alignment {
	cells := splitRow(line)
	aligns := make([]alignment, len(cells))
	for i, cell := range cells {
		aligns[i] = cellAlignment(cell)
	}
	return aligns
}

// cellAlignment maps ":-:" to center and "-:" to right. A leading colon
// alone (":-") is treated like no colon at all.
func cellAlignment(cell string) alignment {
	leading := strings.HasPrefix(cell, ":")
	trailing := strings.HasSuffix(cell, ":")
	switch {
	case leading && trailing && len(cell) > 1:
		return alignCenter
	case trailing && !leading:
		return alignRight
	default:
		return alignNone
	}
}

func (t *table) alignment(col int) alignment {
	if col < len(t.align) {
		return t.align[col]
	}
	return alignNone
}

func (t *table) render(sb *strings.Builder, refs ReferenceTable) {
	sb.WriteString("<table>\n<thead>\n")
	t.writeRow(sb, "th", t.header, refs)
	sb.WriteString("\n</thead>")
	if len(t.rows) > 0 {
		sb.WriteString("\n<tbody>")
		for _, row := range t.rows {
			sb.WriteByte('\n')
			t.writeRow(sb, "td", row, refs)
		}
		sb.WriteString("\n</tbody>")
	}
	sb.WriteString("\n</table>")
}

func (t *table) writeRow(sb *strings.Builder, tag string, cells []string, refs ReferenceTable) {
	sb.WriteString("<tr>")
	for i, cell := range cells {
		sb.WriteString("<" + tag + t.alignment(i).attr() + ">")
		sb.WriteString(renderInline(cell, refs))
		sb.WriteString("</" + tag + ">")
	}
	sb.WriteString("</tr>")
}
