package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuiltinConverter
// ---------------------------------------------------------------------------

func TestBuiltinConverter_ToHTML(t *testing.T) {
	t.Parallel()

	got, err := NewBuiltinConverter().ToHTML(context.Background(), "# Hi\n\n- [x] done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<h1>Hi</h1>\n\n<ul>\n<li>☑ done</li>\n</ul>"
	if got != want {
		t.Errorf("ToHTML() = %q, want %q", got, want)
	}
}

func TestBuiltinConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuiltinConverter().ToHTML(ctx, "# Hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		highlightStyle string
		input          string
		wantContains   []string
		wantExcludes   []string
	}{
		{
			name:         "fragment only",
			input:        "# Title\n\nText",
			wantContains: []string{"<h1>Title</h1>", "<p>Text</p>"},
			wantExcludes: []string{"<html", "<body"},
		},
		{
			name:         "task list uses ballot boxes",
			input:        "- [ ] todo\n- [x] done",
			wantContains: []string{"☐ todo", "☑ done"},
			wantExcludes: []string{"<input", "checkbox"},
		},
		{
			name:         "table alignment",
			input:        "| a | b |\n|:-:|--:|\n| 1 | 2 |",
			wantContains: []string{"<table>", `<th style="text-align:center">a</th>`},
		},
		{
			name:         "raw html passes through",
			input:        "<div>raw</div>",
			wantContains: []string{"<div>raw</div>"},
		},
		{
			name:           "highlighted code gets github background",
			highlightStyle: "github",
			input:          "```go\nfunc main() {}\n```",
			wantContains:   []string{"background-color:#f6f8fa", "<span style="},
		},
		{
			name:         "no highlighting when style is empty",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`<code class="language-go">`},
			wantExcludes: []string{"<span style="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.highlightStyle).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter("").ToHTML(ctx, "# Hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestReplaceCheckboxes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`<li><input checked="" disabled="" type="checkbox"> done</li>`, "<li>☑ done</li>"},
		{`<li><input disabled="" type="checkbox"> todo</li>`, "<li>☐ todo</li>"},
		{`<li><input checked="" disabled="" type="checkbox" /> done</li>`, "<li>☑ done</li>"},
		{`<input type="text">`, `<input type="text">`},
	}

	for _, tt := range tests {
		if got := replaceCheckboxes(tt.input); got != tt.want {
			t.Errorf("replaceCheckboxes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
