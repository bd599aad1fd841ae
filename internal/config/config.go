// Package config loads and validates md2html configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-md2html"

// Engine names accepted in the engine field.
const (
	EngineBuiltin  = "builtin"
	EngineGoldmark = "goldmark"
)

// Field length limits.
const (
	MaxPathLength       = 4096 // Style paths, asset and output directories
	MaxStyleNameLength  = 64   // Chroma style names
	MaxTitleLength      = 200  // Document <title>
	MaxEngineNameLength = 16
)

// Config holds all configuration for HTML generation.
type Config struct {
	Engine    string          `yaml:"engine"` // "builtin" (default) or "goldmark"
	Style     string          `yaml:"style"`  // Embedded style name, CSS path, or "" for none
	Assets    AssetsConfig    `yaml:"assets"`
	Highlight HighlightConfig `yaml:"highlight"`
	Output    OutputConfig    `yaml:"output"`
	Title     string          `yaml:"title"` // Empty = first h1, then a generic title
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// HighlightConfig defines syntax highlighting of fenced code.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // Chroma style name
}

// OutputConfig defines output destination and shape.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
	Compact    bool   `yaml:"compact"`    // Paste-friendly whitespace
	Fragment   bool   `yaml:"fragment"`   // Body markup only, no document wrapper
}

// Validate checks enumerated values and field lengths.
// Called by LoadConfig, but available for consumers who build a Config
// in code.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Engine) {
	case "", EngineBuiltin, EngineGoldmark:
	default:
		return fmt.Errorf("%w: engine %q (must be %s or %s)", ErrInvalidValue, c.Engine, EngineBuiltin, EngineGoldmark)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"engine", c.Engine, MaxEngineNameLength},
		{"style", c.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxStyleNameLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"title", c.Title, MaxTitleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Highlight.Enabled && strings.TrimSpace(c.Highlight.Style) == "" {
		return fmt.Errorf("%w: highlight.style is required when highlighting is enabled", ErrInvalidValue)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Engine:    EngineBuiltin,
		Style:     "github",
		Highlight: HighlightConfig{Enabled: false, Style: "github"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as {name}.yaml or {name}.yml in the current
// directory, then in the user config directory. Fields absent from the file
// keep their DefaultConfig values. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.Engine = strings.ToLower(cfg.Engine)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// String renders the configuration as YAML, for debug output.
func (c *Config) String() string {
	out, err := yamlutil.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return strings.TrimRight(string(out), "\n")
}

// SearchPaths returns the locations LoadConfig tries for a config name,
// in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
