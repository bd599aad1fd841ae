// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-md2html/internal/config"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, a user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := config.AppDirName + "/"
	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return format("pass a CSS file path with --style ./file.css")
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a CSS file path")
}

// ForHighlightStyle returns hints for unknown chroma style names.
func ForHighlightStyle(examples []string) string {
	if len(examples) == 0 {
		return ""
	}
	return format("try one of: " + strings.Join(examples, ", "))
}

// ForEngine returns hints for unknown engine names.
func ForEngine() string {
	return format("use --engine " + config.EngineBuiltin + " or --engine " + config.EngineGoldmark)
}

// ForNoMarkdownFiles returns hints when a directory holds no Markdown.
func ForNoMarkdownFiles() string {
	return format("only .md, .markdown, .mdown and .mkd files are converted")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
