package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         []byte
		dest         any
		wantErr      error
		wantContains string
		want         testConfig
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
			want: testConfig{Name: "test", Count: 42, Enabled: true},
		},
		{
			name: "unicode content",
			data: []byte("name: 日本語テスト"),
			dest: &testConfig{},
			want: testConfig{Name: "日本語テスト"},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:         "unknown field rejected",
			data:         []byte("name: test\nunknown: x"),
			dest:         &testConfig{},
			wantContains: "yamlutil:",
		},
		{
			name:         "invalid syntax",
			data:         []byte("name: [unclosed"),
			dest:         &testConfig{},
			wantContains: "yamlutil:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantContains != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantContains) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantContains)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got := *tt.dest.(*testConfig); got != tt.want {
					t.Errorf("got %+v, want %+v", got, tt.want)
				}
			}
		})
	}
}

func TestUnmarshalStrict_InputTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	err := yamlutil.UnmarshalStrict(data, &testConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(testConfig{Name: "a", Count: 1})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	for _, want := range []string{"name: a", "count: 1", "enabled: false"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Marshal() = %q, missing %q", out, want)
		}
	}
}
