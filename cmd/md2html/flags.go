package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html/internal/logging"
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	output  string
	config  string
	workers int

	engine         string
	style          string
	noStyle        bool
	assetPath      string
	highlight      bool
	highlightStyle string
	compact        bool
	fragment       bool
	title          string

	quiet   bool
	verbose bool
	version bool
	help    bool

	changed map[string]bool // Flags set explicitly on the command line
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{changed: make(map[string]bool)}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Rendering flags
	fs.StringVar(&f.engine, "engine", "", "markdown engine: builtin, goldmark")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for highlighting")
	fs.BoolVar(&f.compact, "compact", false, "paste-friendly output")
	fs.BoolVar(&f.fragment, "fragment", false, "emit body markup only")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first h1)")

	// Common flags
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVarP(&f.version, "version", "V", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})

	return f, fs.Args(), nil
}

// logLevel maps --quiet and --verbose to a logging level.
// --verbose wins when both are given.
func (f *cliFlags) logLevel() string {
	switch {
	case f.verbose:
		return logging.LevelDebug
	case f.quiet:
		return logging.LevelError
	default:
		return logging.LevelWarn
	}
}
