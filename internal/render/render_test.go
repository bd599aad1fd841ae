package render

// Notes:
// - Tests Render through its public entry point; block and inline helpers have
//   their own files for the cases that are easier to pin down in isolation
// - Expected strings are exact where the output is short, wantContains otherwise

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestRender - Exact Output
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "heading without space is a paragraph",
			input: "#Title",
			want:  "<p>#Title</p>",
		},
		{
			name:  "seven hashes is not a heading",
			input: "####### too deep",
			want:  "<p>####### too deep</p>",
		},
		{
			name:  "bold and italic stay separate",
			input: "**bold** and *italic*",
			want:  "<p><strong>bold</strong> and <em>italic</em></p>",
		},
		{
			name:  "underscore emphasis",
			input: "__strong__ and _em_",
			want:  "<p><strong>strong</strong> and <em>em</em></p>",
		},
		{
			name:  "underscores inside a word",
			input: "snake_case_word",
			want:  "<p>snake_case_word</p>",
		},
		{
			name:  "spaced asterisks are not emphasis",
			input: "2 * 3 * 4",
			want:  "<p>2 * 3 * 4</p>",
		},
		{
			name:  "unmatched bold is literal",
			input: "**open",
			want:  "<p>**open</p>",
		},
		{
			name:  "strikethrough and code",
			input: "~~old~~ `code`",
			want:  "<p><del>old</del> <code>code</code></p>",
		},
		{
			name:  "paragraph lines joined with spaces",
			input: "one\ntwo\n\nthree",
			want:  "<p>one two</p>\n\n<p>three</p>",
		},
		{
			name:  "crlf line endings",
			input: "one\r\ntwo",
			want:  "<p>one two</p>",
		},
		{
			name:  "blockquote flattened to one paragraph",
			input: "> one\n> two",
			want:  "<blockquote><p>one two</p></blockquote>",
		},
		{
			name:  "blank line ends blockquote",
			input: "> one\n\n> two",
			want:  "<blockquote><p>one</p></blockquote>\n\n<blockquote><p>two</p></blockquote>",
		},
		{
			name:  "horizontal rules",
			input: "---\n***\n___",
			want:  "<hr>\n<hr>\n<hr>",
		},
		{
			name:  "mixed rule characters are text",
			input: "-*-",
			want:  "<p>-*-</p>",
		},
		{
			name:  "task list",
			input: "- [ ] todo\n- [x] done\n- [X] also done",
			want:  "<ul>\n<li>☐ todo</li>\n<li>☑ done</li>\n<li>☑ also done</li>\n</ul>",
		},
		{
			name:  "ordered list",
			input: "1. one\n2. two",
			want:  "<ol>\n<li>one</li>\n<li>two</li>\n</ol>",
		},
		{
			name:  "nested list is a sibling of its parent item",
			input: "- a\n  - b\n- c",
			want:  "<ul>\n<li>a</li>\n<ul>\n<li>b</li>\n</ul>\n<li>c</li>\n</ul>",
		},
		{
			name:  "kind change at same indent reopens the list",
			input: "1. a\n- b",
			want:  "<ol>\n<li>a</li>\n</ol>\n<ul>\n<li>b</li>\n</ul>",
		},
		{
			name:  "non-list line closes every open list",
			input: "- a\n  1. b\ntext",
			want:  "<ul>\n<li>a</li>\n<ol>\n<li>b</li>\n</ol>\n</ul>\n<p>text</p>",
		},
		{
			name:  "fenced code is verbatim",
			input: "```go\n# not a heading\n| a | b |\n|---|---|\n**x**\n```",
			want:  "<pre><code class=\"language-go\"># not a heading\n| a | b |\n|---|---|\n**x**</code></pre>",
		},
		{
			name:  "fence without language",
			input: "```\nplain\n```",
			want:  "<pre><code>plain</code></pre>",
		},
		{
			name:  "unterminated fence is literal",
			input: "```go\nfoo",
			want:  "<p>```go foo</p>",
		},
		{
			name:  "image with title",
			input: `![logo](img.png "The logo")`,
			want:  `<p><img alt="logo" src="img.png" title="The logo"></p>`,
		},
		{
			name:  "direct link",
			input: "[site](https://example.com)",
			want:  `<p><a href="https://example.com">site</a></p>`,
		},
		{
			name:  "emphasis markers in href are not converted",
			input: "[init](https://example.com/__init__)",
			want:  `<p><a href="https://example.com/__init__">init</a></p>`,
		},
		{
			name:  "bare url",
			input: "see https://example.com.",
			want:  `<p>see <a href="https://example.com">https://example.com</a>.</p>`,
		},
		{
			name:  "bare url in parentheses",
			input: "(see https://example.com/x)",
			want:  `<p>(see <a href="https://example.com/x">https://example.com/x</a>)</p>`,
		},
		{
			name:  "url after equals sign is left alone",
			input: "a=https://example.com",
			want:  "<p>a=https://example.com</p>",
		},
		{
			name:  "unresolved reference stays literal",
			input: "[foo][missing]",
			want:  "<p>[foo][missing]</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Render(tt.input)
			if got != tt.want {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_Headings(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 6; level++ {
		input := strings.Repeat("#", level) + " Title"
		want := fmt.Sprintf("<h%d>Title</h%d>", level, level)
		if got := Render(input); got != want {
			t.Errorf("Render(%q) = %q, want %q", input, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRender - Tables
// ---------------------------------------------------------------------------

func TestRender_Tables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "alignments from separator",
			input: "| a | b | c | d |\n|:-:|--:|:--|---|\n| 1 | 2 | 3 | 4 |",
			want: "<table>\n<thead>\n" +
				`<tr><th style="text-align:center">a</th><th style="text-align:right">b</th><th>c</th><th>d</th></tr>` +
				"\n</thead>\n<tbody>\n" +
				`<tr><td style="text-align:center">1</td><td style="text-align:right">2</td><td>3</td><td>4</td></tr>` +
				"\n</tbody>\n</table>",
		},
		{
			name:  "short row is not padded",
			input: "| a | b |\n|---|---|\n| 1 |",
			want:  "<table>\n<thead>\n<tr><th>a</th><th>b</th></tr>\n</thead>\n<tbody>\n<tr><td>1</td></tr>\n</tbody>\n</table>",
		},
		{
			name:  "header only",
			input: "| a |\n|---|",
			want:  "<table>\n<thead>\n<tr><th>a</th></tr>\n</thead>\n</table>",
		},
		{
			name:  "line without pipe ends body",
			input: "| a |\n|---|\n| 1 |\nafter",
			want:  "<table>\n<thead>\n<tr><th>a</th></tr>\n</thead>\n<tbody>\n<tr><td>1</td></tr>\n</tbody>\n</table>\n<p>after</p>",
		},
		{
			name:  "inline markup in cells",
			input: "| **a** |\n|---|\n| `b` |",
			want:  "<table>\n<thead>\n<tr><th><strong>a</strong></th></tr>\n</thead>\n<tbody>\n<tr><td><code>b</code></td></tr>\n</tbody>\n</table>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Render(tt.input); got != tt.want {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender - Reference Links
// ---------------------------------------------------------------------------

func TestRender_ReferenceLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "resolved case-insensitively",
			input:        "[docs][Guide]\n\n[guide]: https://example.com/guide",
			wantContains: []string{`<a href="https://example.com/guide">docs</a>`},
			wantExcludes: []string{"[guide]:"},
		},
		{
			name:         "empty key uses link text",
			input:        "[Guide][]\n\n[guide]: https://example.com/guide",
			wantContains: []string{`<a href="https://example.com/guide">Guide</a>`},
		},
		{
			name:         "earliest definition wins",
			input:        "[x][k]\n\n[k]: https://first.example\n[K]: https://second.example",
			wantContains: []string{`href="https://first.example"`},
			wantExcludes: []string{"second.example"},
		},
		{
			name:         "definition inside fence is kept",
			input:        "```\n[k]: https://example.com\n```\n[x][k]",
			wantContains: []string{"[k]: https://example.com</code></pre>", "<p>[x][k]</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Render(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Render() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender - Behavioral Guarantees
// ---------------------------------------------------------------------------

func TestRender_NoCheckboxInputs(t *testing.T) {
	t.Parallel()

	got := Render("- [ ] a\n- [x] b")
	if strings.Contains(got, "<input") || strings.Contains(got, `type="checkbox"`) {
		t.Errorf("Render() emitted checkbox markup:\n%s", got)
	}
}

func TestRender_NotIdempotent(t *testing.T) {
	t.Parallel()

	first := Render("```\n**x**\n```")
	if first != "<pre><code>**x**</code></pre>" {
		t.Fatalf("first Render() = %q", first)
	}

	// Markup lines still go through the inline transforms.
	second := Render(first)
	if second != "<pre><code><strong>x</strong></code></pre>" {
		t.Errorf("second Render() = %q", second)
	}
}

func TestRender_CharacterBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "invalid bytes around emphasis",
			input: "\xff*a*\xfe",
			want:  "<p>\xff<em>a</em>\xfe</p>",
		},
		{
			name:  "multibyte list item",
			input: "- é *ü*\n- [x] 日本",
			want:  "<ul>\n<li>é <em>ü</em></li>\n<li>☑ 日本</li>\n</ul>",
		},
		{
			name:  "multibyte table cells",
			input: "| é | ü |\n|---|--:|\n| ñ | 日本 |",
			want: "<table>\n<thead>\n" +
				`<tr><th>é</th><th style="text-align:right">ü</th></tr>` +
				"\n</thead>\n<tbody>\n" +
				`<tr><td>ñ</td><td style="text-align:right">日本</td></tr>` +
				"\n</tbody>\n</table>",
		},
		{
			name:  "multibyte around autolink",
			input: "日本 https://example.com/ü 終",
			want:  `<p>日本 <a href="https://example.com/ü">https://example.com/ü</a> 終</p>`,
		},
		{
			name:  "literal placeholder runes stay text",
			input: "x \uE0000\uE001 <b>y</b>",
			want:  "<p>x \uE0000\uE001 <b>y</b></p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Render(tt.input); got != tt.want {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_UnclosedMarkersLinear(t *testing.T) {
	t.Parallel()

	for _, unit := range []string{"*a ", "_a "} {
		input := strings.Repeat(unit, 100000)

		start := time.Now()
		got := Render(input)
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("Render(%d bytes of %q) took %v", len(input), unit, elapsed)
		}
		if strings.Contains(got, "<em>") {
			t.Errorf("Render() of unclosed %q markers emitted <em>", unit)
		}
	}
}

func TestRender_Concurrent(t *testing.T) {
	t.Parallel()

	input := "# T\n\n- [x] a\n  - b\n\n| a |\n|--:|\n| 1 |\n\n[r][k] https://example.com _e_\n\n[k]: https://k.example"
	want := Render(input)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Render(input); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Render() = %q, want %q", got, want)
	}
}
