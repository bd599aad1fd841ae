package md2html

import (
	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2html/internal/assets"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds construction settings resolved by NewConverter.
type converterConfig struct {
	engine         Engine
	styleInput     string // Name, path, or CSS content
	resolvedStyle  string // CSS content after resolution
	assetPath      string
	highlight      bool
	highlightStyle string
	compact        bool
}

// defaultConfig returns the settings used when no option overrides them.
func defaultConfig() converterConfig {
	return converterConfig{
		engine:     EngineBuiltin,
		styleInput: assets.DefaultStyleName,
	}
}

// WithEngine selects the Markdown engine.
// Unknown engines make NewConverter fail with ErrUnknownEngine.
func WithEngine(engine Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = engine
	}
}

// WithStyle sets the stylesheet for the document.
// Accepts a style name ("github"), a file path ("./custom.css"),
// or CSS content ("body { ... }"). An empty value disables styling.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads styles from a custom directory, falling back to the
// embedded styles for names it does not contain.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithHighlighting enables syntax highlighting of fenced code blocks with
// the named chroma style, written as inline styles. An empty style selects
// "github".
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithCompact toggles paste-friendly output: code newlines become <br>
// and whitespace between tags is dropped.
func WithCompact(compact bool) Option {
	return func(c *Converter) {
		c.cfg.compact = compact
	}
}

// WithLogger sets the logger for stage timings, written at debug level.
// Without it, Convert uses the logger carried by its context.
func WithLogger(logger *log.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}
