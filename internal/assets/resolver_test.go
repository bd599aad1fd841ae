package assets

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
		if _, err := r.LoadStyle(DefaultStyleName); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeStyle(t, dir, DefaultStyleName, "/* custom */")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		got, err := r.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "/* custom */" {
			t.Errorf("LoadStyle() = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}
		if _, err := r.LoadStyle("minimal"); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})

	t.Run("not found anywhere", func(t *testing.T) {
		t.Parallel()

		r, _ := NewAssetResolver(t.TempDir())
		if _, err := r.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name does not fall back", func(t *testing.T) {
		t.Parallel()

		r, _ := NewAssetResolver(t.TempDir())
		if _, err := r.LoadStyle("a.b"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("invalid base path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}
