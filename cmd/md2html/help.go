package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [flags] [FILE|DIR ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown to HTML. Reads stdin when no input is given.")
	fmt.Fprintln(w, "A single file or stdin is written to stdout unless --output is set.")
	fmt.Fprintln(w, "Directories and multiple files are converted in parallel.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>             Engine: builtin, goldmark")
	fmt.Fprintln(w, "      --style <name|path>      CSS style name or file path")
	fmt.Fprintln(w, "      --no-style               Disable CSS styling")
	fmt.Fprintln(w, "      --asset-path <dir>       Custom asset directory")
	fmt.Fprintln(w, "      --highlight              Syntax-highlight fenced code")
	fmt.Fprintln(w, "      --highlight-style <s>    Chroma style (implies --highlight)")
	fmt.Fprintln(w, "      --compact                Paste-friendly output")
	fmt.Fprintln(w, "      --fragment               Emit body markup only")
	fmt.Fprintln(w, "      --title <s>              Document title (\"\" = first h1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
	fmt.Fprintln(w, "  -V, --version                Show version")
	fmt.Fprintln(w, "  -h, --help                   Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment (flags take precedence, config file is overridden):")
	fmt.Fprintln(w, "  MD2HTML_CONFIG               Config file name or path")
	fmt.Fprintln(w, "  MD2HTML_ENGINE               Engine: builtin, goldmark")
	fmt.Fprintln(w, "  MD2HTML_STYLE                CSS style name or file path")
	fmt.Fprintln(w, "  MD2HTML_HIGHLIGHT_STYLE      Chroma style (enables highlighting)")
	fmt.Fprintln(w, "  MD2HTML_OUTPUT_DIR           Default output directory")
	fmt.Fprintln(w, "  MD2HTML_WORKERS              Parallel workers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  general error")
	fmt.Fprintln(w, "  2  invalid flags, config, or input")
	fmt.Fprintln(w, "  3  file not found, unreadable, or unwritable")
}
