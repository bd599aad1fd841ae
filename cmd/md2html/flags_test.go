package main

import (
	"testing"

	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logging"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseFlags([]string{"-o", "out", "-w", "4", "--engine", "goldmark", "--compact", "a.md", "b.md"})
	if err != nil {
		t.Fatalf("parseFlags() unexpected error: %v", err)
	}
	if f.output != "out" || f.workers != 4 || f.engine != "goldmark" || !f.compact {
		t.Errorf("parseFlags() = %+v", f)
	}
	if len(args) != 2 || args[0] != "a.md" || args[1] != "b.md" {
		t.Errorf("positional args = %v", args)
	}
	if !f.changed["engine"] || !f.changed["compact"] || f.changed["fragment"] {
		t.Errorf("changed = %v", f.changed)
	}
}

func TestCLIFlags_LogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quiet, verbose bool
		want           string
	}{
		{false, false, logging.LevelWarn},
		{true, false, logging.LevelError},
		{false, true, logging.LevelDebug},
		{true, true, logging.LevelDebug},
	}

	for _, tt := range tests {
		f := &cliFlags{quiet: tt.quiet, verbose: tt.verbose}
		if got := f.logLevel(); got != tt.want {
			t.Errorf("logLevel(quiet=%v, verbose=%v) = %q, want %q", tt.quiet, tt.verbose, got, tt.want)
		}
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		setup func(cfg *config.Config)
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keep config",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Style != "github" || cfg.Highlight.Enabled || cfg.Output.Compact {
					t.Errorf("config changed: %+v", cfg)
				}
			},
		},
		{
			name: "no-style wins over style",
			args: []string{"--style", "minimal", "--no-style"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Style != "" {
					t.Errorf("Style = %q, want empty", cfg.Style)
				}
			},
		},
		{
			name: "highlight style enables highlighting",
			args: []string{"--highlight-style", "monokai"},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Highlight.Enabled || cfg.Highlight.Style != "monokai" {
					t.Errorf("Highlight = %+v", cfg.Highlight)
				}
			},
		},
		{
			name: "explicit false overrides",
			args: []string{"--compact=false", "--fragment=false"},
			setup: func(cfg *config.Config) {
				cfg.Output.Compact = true
				cfg.Output.Fragment = true
			},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Output.Compact || cfg.Output.Fragment {
					t.Errorf("Output = %+v", cfg.Output)
				}
			},
		},
		{
			name: "engine, asset path and title",
			args: []string{"--engine", "goldmark", "--asset-path", "./assets", "--title", "T"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Engine != "goldmark" || cfg.Assets.BasePath != "./assets" || cfg.Title != "T" {
					t.Errorf("config = %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags() unexpected error: %v", err)
			}
			cfg := config.DefaultConfig()
			if tt.setup != nil {
				tt.setup(cfg)
			}
			mergeFlags(f, cfg)
			tt.check(t, cfg)
		})
	}
}
