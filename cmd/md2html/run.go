package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/logging"
)

// errUsage marks command-line parse errors.
var errUsage = errors.New("invalid usage")

// highlightStyleExamples are suggested when a chroma style is unknown.
var highlightStyleExamples = []string{"github", "github-dark", "monokai", "dracula", "solarized-light"}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, inputs, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'md2html --help' for usage.")
		return exitCodeFor(fmt.Errorf("%w: %v", errUsage, err))
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return ExitSuccess
	}

	logger := logging.New(env.Stderr, flags.logLevel())
	ctx = logging.WithLogger(ctx, logger)
	logger.Debug("starting",
		logging.FieldVersion, Version,
		logging.FieldProcs, runtime.GOMAXPROCS(0))

	if err := runConvert(ctx, inputs, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, inputs []string, flags *cliFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	envCfg := loadEnvConfig(env.getenv)
	warnUnknownEnvVars(env.environ(), logger)

	configName := flags.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg := config.DefaultConfig()
	if configName != "" {
		var err error
		if cfg, err = config.LoadConfig(configName); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(envCfg, cfg)

	// Validate the engine flag before merging so an unknown name reports
	// ErrUnknownEngine rather than a generic config error.
	if flags.changed["engine"] {
		if _, err := md2html.ParseEngine(flags.engine); err != nil {
			return err
		}
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("configuration", logging.FieldConfig, cfg.String())

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		return err
	}

	params := documentParams{title: cfg.Title, fragment: cfg.Output.Fragment}

	if len(inputs) == 0 {
		return convertStdin(ctx, conv, flags.output, params, env)
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputs, outputDir)
	if err != nil {
		return err
	}

	if outputDir == "" && len(inputs) == 1 && !fileutil.DirExists(inputs[0]) {
		return convertToStdout(ctx, conv, files[0].InputPath, params, env)
	}

	workerFlag := flags.workers
	if workerFlag == 0 {
		workerFlag = envCfg.Workers
	}
	workers := resolveWorkers(workerFlag)
	logger.Debug("converting",
		logging.FieldEngine, cfg.Engine,
		logging.FieldStyle, cfg.Style,
		logging.FieldFiles, len(files),
		logging.FieldWorkers, min(workers, len(files)))

	results := convertBatch(ctx, conv, files, workers, params)
	if failed := printResults(results, flags.quiet, flags.verbose, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failed, len(results))
	}
	return nil
}

// convertStdin converts standard input to output, or to stdout when
// output is empty.
func convertStdin(ctx context.Context, conv CLIConverter, output string, params documentParams, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	result, err := conv.Convert(ctx, md2html.Input{
		Markdown:     string(content),
		Title:        params.title,
		FragmentOnly: params.fragment,
	})
	if err != nil {
		return err
	}

	if output == "" {
		_, err = env.Stdout.Write(result.HTML)
		return err
	}
	return writeOutput(output, result.HTML)
}

// convertToStdout converts a single file and writes the result to stdout.
func convertToStdout(ctx context.Context, conv CLIConverter, path string, params documentParams, env *Environment) error {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	result, err := conv.Convert(ctx, md2html.Input{
		Markdown:     string(content),
		SourceDir:    filepath.Dir(path),
		Title:        params.title,
		FragmentOnly: params.fragment,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	_, err = env.Stdout.Write(result.HTML)
	return err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.changed["engine"] {
		cfg.Engine = flags.engine
	}
	if flags.style != "" {
		cfg.Style = flags.style
	}
	if flags.noStyle {
		cfg.Style = ""
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.changed["highlight"] {
		cfg.Highlight.Enabled = flags.highlight
	}
	if flags.highlightStyle != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = flags.highlightStyle
	}
	if flags.changed["compact"] {
		cfg.Output.Compact = flags.compact
	}
	if flags.changed["fragment"] {
		cfg.Output.Fragment = flags.fragment
	}
	if flags.changed["title"] {
		cfg.Title = flags.title
	}
}

// converterOptions translates a validated config into converter options.
func converterOptions(cfg *config.Config, logger *log.Logger) ([]md2html.Option, error) {
	engine, err := md2html.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts := []md2html.Option{
		md2html.WithEngine(engine),
		md2html.WithStyle(cfg.Style),
		md2html.WithCompact(cfg.Output.Compact),
		md2html.WithLogger(logger),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2html.WithHighlighting(cfg.Highlight.Style))
	}
	return opts, nil
}

// hintFor returns an actionable hint suffix for err, or "".
func hintFor(err error, flags *cliFlags) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if name := flags.config; name != "" && !fileutil.IsFilePath(name) {
			searched = config.SearchPaths(name)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, md2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, md2html.ErrInvalidHighlightStyle):
		return hints.ForHighlightStyle(highlightStyleExamples)
	case errors.Is(err, md2html.ErrUnknownEngine):
		return hints.ForEngine()
	case errors.Is(err, ErrNoMarkdownFiles):
		return hints.ForNoMarkdownFiles()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
