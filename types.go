package md2html

import (
	"fmt"
	"strings"
)

// Engine selects the Markdown to HTML implementation.
type Engine string

// Available engines.
const (
	EngineBuiltin  Engine = "builtin"
	EngineGoldmark Engine = "goldmark"
)

// ParseEngine maps a case-insensitive name to an Engine.
// An empty name selects EngineBuiltin.
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case "":
		return EngineBuiltin, nil
	case EngineBuiltin, EngineGoldmark:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// Input contains the per-conversion parameters.
type Input struct {
	Markdown     string // Markdown source, required
	SourceDir    string // Directory for resolving relative image and link paths
	CSS          string // Extra CSS appended after the converter's style
	Title        string // Document title; empty uses the first h1
	FragmentOnly bool   // Skip document wrapping
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Fragment string // Body markup
	HTML     []byte // Full document, or the fragment when Input.FragmentOnly
}
