package render

import (
	"regexp"
	"strings"
)

// listKind distinguishes <ul> from <ol> scopes.
type listKind int

const (
	unorderedList listKind = iota
	orderedList
)

func (k listKind) tag() string {
	if k == orderedList {
		return "ol"
	}
	return "ul"
}

// Task item markers are rendered as ballot box characters rather than
// checkbox inputs, so the output survives pasting into rich text editors.
const (
	uncheckedBox = "\u2610" // ☐
	checkedBox   = "\u2611" // ☑
)

// List item patterns, tried in this order against the trimmed line.
var (
	taskItemPattern      = regexp.MustCompile(`^[-*+]\s+\[([ xX])\](?:\s+(.*))?$`)
	unorderedItemPattern = regexp.MustCompile(`^[-*+]\s+(.*)$`)
	orderedItemPattern   = regexp.MustCompile(`^\d+\.\s+(.*)$`)
)

// classifyListItem returns the list kind and item content of line.
func classifyListItem(line string) (listKind, string, bool) {
	trimmed := strings.TrimSpace(line)
	if m := taskItemPattern.FindStringSubmatch(trimmed); m != nil {
		box := uncheckedBox
		if m[1] != " " {
			box = checkedBox
		}
		return unorderedList, strings.TrimRight(box+" "+m[2], " "), true
	}
	if m := unorderedItemPattern.FindStringSubmatch(trimmed); m != nil {
		return unorderedList, m[1], true
	}
	if m := orderedItemPattern.FindStringSubmatch(trimmed); m != nil {
		return orderedList, m[1], true
	}
	return 0, "", false
}

// indentOf counts leading spaces and tabs; a tab counts as one column.
func indentOf(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

type listEventKind int

const (
	openList listEventKind = iota
	closeList
	listItem
)

// listEvent is one emitted piece of list markup.
type listEvent struct {
	kind listEventKind
	list listKind
	text string
}

// listContext is an open list scope.
type listContext struct {
	kind   listKind
	indent int
}

// listScanner tracks open list scopes, outermost first. While scopes are
// being pushed, indentation strictly increases towards the top.
type listScanner struct {
	stack  []listContext
	events []listEvent
}

// item records one list line at the given indentation.
//
// Deeper scopes are closed first. A new scope opens when nothing is open or
// the line is indented past the innermost scope; at equal indentation a
// change of kind closes the scope and reopens it with the new kind.
//
// The opening tag of a deeper scope follows the previous </li>, so a
// nested list ends up as a sibling of its parent item rather than inside it.
func (s *listScanner) item(kind listKind, indent int, text string) {
	for len(s.stack) > 0 && s.top().indent > indent {
		s.pop()
	}
	switch {
	case len(s.stack) == 0 || s.top().indent < indent:
		s.push(kind, indent)
	case s.top().kind != kind:
		s.pop()
		s.push(kind, indent)
	}
	s.events = append(s.events, listEvent{kind: listItem, text: text})
}

func (s *listScanner) top() listContext {
	return s.stack[len(s.stack)-1]
}

func (s *listScanner) push(kind listKind, indent int) {
	s.stack = append(s.stack, listContext{kind: kind, indent: indent})
	s.events = append(s.events, listEvent{kind: openList, list: kind})
}

func (s *listScanner) pop() {
	ctx := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	s.events = append(s.events, listEvent{kind: closeList, list: ctx.kind})
}

// drain closes every open scope, innermost first, and hands back the
// events collected so far.
func (s *listScanner) drain() []listEvent {
	for len(s.stack) > 0 {
		s.pop()
	}
	events := s.events
	s.events = nil
	return events
}

// groupLists runs the list state machine over the node sequence. Any node
// that is not a list line closes all open scopes and passes through.
func groupLists(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	var s listScanner
	flush := func() {
		if events := s.drain(); len(events) > 0 {
			out = append(out, block{kind: listBlock, list: events})
		}
	}

	for _, b := range blocks {
		if b.kind == textLine {
			if kind, text, ok := classifyListItem(b.text); ok {
				s.item(kind, indentOf(b.text), text)
				continue
			}
		}
		flush()
		out = append(out, b)
	}
	flush()
	return out
}

// renderList writes list events one per line.
func renderList(sb *strings.Builder, events []listEvent, refs ReferenceTable) {
	for i, ev := range events {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch ev.kind {
		case openList:
			sb.WriteString("<" + ev.list.tag() + ">")
		case closeList:
			sb.WriteString("</" + ev.list.tag() + ">")
		case listItem:
			sb.WriteString("<li>")
			sb.WriteString(renderInline(ev.text, refs))
			sb.WriteString("</li>")
		}
	}
}
