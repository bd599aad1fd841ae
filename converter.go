package md2html

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logging"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.SourcePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.BuiltinConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CodeHighlighter      = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.DocumentWrapper      = (*pipeline.HTMLDocument)(nil)
)

// Pipeline stage names, used in debug logs.
const (
	stagePreprocess = "preprocess"
	stageRender     = "render"
	stageHighlight  = "highlight"
	stagePaths      = "paths"
	stageCompact    = "compact"
	stageWrap       = "wrap"
)

// Converter orchestrates the Markdown to HTML conversion pipeline.
// Create with NewConverter and call Convert for each document.
type Converter struct {
	cfg           converterConfig
	logger        *log.Logger
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	highlighter   pipeline.CodeHighlighter // nil when highlighting is off
	document      pipeline.DocumentWrapper
}

// NewConverter creates a Converter with default configuration: builtin
// engine, embedded "github" style, no highlighting, no compaction.
// Returns an error for an unknown engine or highlight style, an unusable
// asset path, or a style that cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          defaultConfig(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.SourcePreprocessor{},
		document:     &pipeline.HTMLDocument{},
	}

	for _, opt := range opts {
		opt(c)
	}

	engine, err := ParseEngine(string(c.cfg.engine))
	if err != nil {
		return nil, err
	}
	c.cfg.engine = engine

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if err := c.buildEngine(); err != nil {
		return nil, err
	}

	return c, nil
}

// buildEngine creates the HTML converter and, for the builtin engine, the
// highlighting post-pass. Goldmark highlights while rendering.
func (c *Converter) buildEngine() error {
	style := c.cfg.highlightStyle
	if c.cfg.highlight && style == "" {
		style = pipeline.DefaultHighlightStyle
	}
	if c.cfg.highlight && !pipeline.IsHighlightStyle(style) {
		return fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, style)
	}

	switch c.cfg.engine {
	case EngineGoldmark:
		if !c.cfg.highlight {
			style = ""
		}
		c.htmlConverter = pipeline.NewGoldmarkConverter(style)
	default:
		c.htmlConverter = pipeline.NewBuiltinConverter()
		if c.cfg.highlight {
			highlighter, err := pipeline.NewChromaHighlighter(style)
			if err != nil {
				return err
			}
			c.highlighter = highlighter
		}
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := strings.TrimSpace(c.cfg.styleInput)
	if input == "" {
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// Convert runs the full pipeline and returns the fragment and document.
// The context is checked between stages. Internal panics are recovered
// and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	logger := c.loggerFor(ctx)
	start := time.Now()

	stageStart := time.Now()
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logStage(logger, stagePreprocess, stageStart)

	stageStart = time.Now()
	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	logStage(logger, stageRender, stageStart)

	if c.highlighter != nil {
		stageStart = time.Now()
		fragment, err = c.highlighter.Highlight(ctx, fragment)
		if err != nil {
			return nil, fmt.Errorf("highlighting code: %w", err)
		}
		logStage(logger, stageHighlight, stageStart)
	}

	if input.SourceDir != "" {
		stageStart = time.Now()
		fragment, err = pipeline.ResolveRelativePaths(fragment, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving relative paths: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logStage(logger, stagePaths, stageStart)
	}

	if c.cfg.compact {
		stageStart = time.Now()
		fragment = pipeline.Compact(fragment)
		logStage(logger, stageCompact, stageStart)
	}

	res := &ConvertResult{Fragment: fragment}
	if input.FragmentOnly {
		res.HTML = []byte(fragment)
	} else {
		stageStart = time.Now()
		document := c.document.WrapDocument(ctx, fragment, input.Title, c.css(input))
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.HTML = []byte(document)
		logStage(logger, stageWrap, stageStart)
	}

	logger.Debug("converted",
		logging.FieldBytes, len(res.HTML),
		logging.FieldDuration, time.Since(start))
	return res, nil
}

// css combines the converter's style with the per-call CSS. The converter
// style comes first so input CSS can override it.
func (c *Converter) css(input Input) string {
	switch {
	case input.CSS == "":
		return c.cfg.resolvedStyle
	case c.cfg.resolvedStyle == "":
		return input.CSS
	default:
		return c.cfg.resolvedStyle + "\n" + input.CSS
	}
}

func (c *Converter) loggerFor(ctx context.Context) *log.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

func logStage(logger *log.Logger, stage string, start time.Time) {
	logger.Debug("stage done",
		logging.FieldStage, stage,
		logging.FieldDuration, time.Since(start))
}

// validateInput checks that required fields are present.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return nil
}
