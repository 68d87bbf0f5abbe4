package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/renderer"
	"github.com/dshills/cluemark/internal/renderer/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assistant.Enabled() {
		t.Error("assistant should be disabled by default")
	}
	if cfg.Assistant.Location != "us-central1" {
		t.Errorf("location = %q", cfg.Assistant.Location)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[theme]
fodder = "#E5C07B"

[keys]
fodder = "w"

[deriver]
script = "/home/u/derive.lua"

[assistant]
project = "my-project"
location = "europe-west1"
model = "gemini-2.5-pro"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme["fodder"] != "#E5C07B" {
		t.Errorf("theme = %v", cfg.Theme)
	}
	if cfg.Keys["fodder"] != "w" {
		t.Errorf("keys = %v", cfg.Keys)
	}
	if cfg.Deriver.Script != "/home/u/derive.lua" {
		t.Errorf("script = %q", cfg.Deriver.Script)
	}
	if !cfg.Assistant.Enabled() || cfg.Assistant.Location != "europe-west1" {
		t.Errorf("assistant = %+v", cfg.Assistant)
	}
}

func TestLoadPartialAssistantKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[assistant]\nproject = \"p\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assistant.Location != "us-central1" || cfg.Assistant.Model != "gemini-2.0-flash" {
		t.Errorf("assistant = %+v", cfg.Assistant)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "not = [valid")); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyKeys(t *testing.T) {
	cfg := Config{Keys: map[string]string{"fodder": "w"}}

	reg, err := cfg.ApplyKeys(annotate.DefaultRegistry())
	if err != nil {
		t.Fatalf("ApplyKeys: %v", err)
	}
	d, ok := reg.ByKey('w')
	if !ok || d.Mode != annotate.ModeFodder {
		t.Errorf("ByKey('w') = %+v, %v", d, ok)
	}
	if _, ok := reg.ByKey('f'); ok {
		t.Error("old binding should be gone")
	}
}

func TestApplyKeysRejectsBadBindings(t *testing.T) {
	tests := []struct {
		name string
		keys map[string]string
	}{
		{"unknown mode", map[string]string{"martian": "x"}},
		{"conflict", map[string]string{"fodder": "s"}},
		{"multi-char", map[string]string{"fodder": "fo"}},
		{"empty", map[string]string{"fodder": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Keys: tt.keys}
			if _, err := cfg.ApplyKeys(annotate.DefaultRegistry()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyTheme(t *testing.T) {
	cfg := Config{Theme: map[string]string{"fodder": "#FF0000"}}

	theme, err := cfg.ApplyTheme(renderer.DefaultTheme())
	if err != nil {
		t.Fatalf("ApplyTheme: %v", err)
	}
	got := theme.ModeStyle(annotate.ModeFodder)
	if got.Foreground != core.ColorFromRGB(255, 0, 0) {
		t.Errorf("fodder foreground = %+v", got.Foreground)
	}
	// Unconfigured modes keep their default style.
	want := renderer.DefaultTheme().ModeStyle(annotate.ModeSynonym)
	if !theme.ModeStyle(annotate.ModeSynonym).Equals(want) {
		t.Error("synonym style should be unchanged")
	}
}

func TestApplyThemeRejectsBadColor(t *testing.T) {
	cfg := Config{Theme: map[string]string{"fodder": "red"}}
	if _, err := cfg.ApplyTheme(renderer.DefaultTheme()); err == nil {
		t.Error("expected error")
	}
}
