package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MD2HTML_CONFIG: config file name or path
	Engine         string // MD2HTML_ENGINE: builtin, goldmark
	Style          string // MD2HTML_STYLE: CSS style name or path
	HighlightStyle string // MD2HTML_HIGHLIGHT_STYLE: chroma style, enables highlighting
	OutputDir      string // MD2HTML_OUTPUT_DIR: default output directory
	Workers        int    // MD2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":          true,
	"MD2HTML_ENGINE":          true,
	"MD2HTML_STYLE":           true,
	"MD2HTML_HIGHLIGHT_STYLE": true,
	"MD2HTML_OUTPUT_DIR":      true,
	"MD2HTML_WORKERS":         true,
}

// loadEnvConfig reads configuration through getenv.
// An MD2HTML_WORKERS outside 1..maxWorkers is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("MD2HTML_CONFIG"),
		Engine:         getenv("MD2HTML_ENGINE"),
		Style:          getenv("MD2HTML_STYLE"),
		HighlightStyle: getenv("MD2HTML_HIGHLIGHT_STYLE"),
		OutputDir:      getenv("MD2HTML_OUTPUT_DIR"),
	}

	if workers := getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 && w <= maxWorkers {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
// Helps catch typos like MD2HTML_STYEL.
func warnUnknownEnvVars(environ []string, logger *log.Logger) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = env.HighlightStyle
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
