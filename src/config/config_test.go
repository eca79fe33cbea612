package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

var configKeys = []string{
	"HANDLE_RADIUS", "LINE_WIDTH", "DISPLAY_HIGHLIGHT_WIDTH", "SELECTION_COLOR",
	"SHADE_COLOR", "TEXT_COLOR", "MODE_TEXT_SIZE", "FONT_FAMILY", "ENABLE_FILE_LOGGING",
}

// isolate points every config source at dir and clears the config keys.
func isolate(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(ConfigPathEnvVar, "")
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Expected no config path, got %q", cfg.Path)
	}
	if cfg.HandleRadius != 10 || cfg.LineWidth != 1 || cfg.DisplayHighlightWidth != 5 || cfg.ModeTextSize != 30 {
		t.Errorf("Unexpected numeric defaults: %+v", cfg)
	}
	if cfg.SelectionColor != DefaultSelectionColor || cfg.ShadeColor != DefaultShadeColor || cfg.TextColor != DefaultTextColor {
		t.Errorf("Unexpected color defaults: %+v", cfg)
	}
	if cfg.FontFamily != "monospace" {
		t.Errorf("Expected FontFamily to be 'monospace', got '%s'", cfg.FontFamily)
	}
	if cfg.EnableFileLogging {
		t.Error("Expected file logging to be off by default")
	}
}

func TestLoadFromXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	isolate(t, dir)
	path := filepath.Join(dir, "region-capture", "config.env")
	writeConfig(t, path, "HANDLE_RADIUS=15\nSHADE_COLOR=0,0,0,0.7\nFONT_FAMILY=Iosevka\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Expected path %q, got %q", path, cfg.Path)
	}
	if cfg.HandleRadius != 15 {
		t.Errorf("Expected HandleRadius 15, got %d", cfg.HandleRadius)
	}
	if want := (Color{A: 0.7}); cfg.ShadeColor != want {
		t.Errorf("Expected ShadeColor %v, got %v", want, cfg.ShadeColor)
	}
	if cfg.FontFamily != "Iosevka" {
		t.Errorf("Expected FontFamily 'Iosevka', got '%s'", cfg.FontFamily)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	isolate(t, dir)
	path := filepath.Join(dir, "custom.env")
	writeConfig(t, path, "HANDLE_RADIUS=15\nLINE_WIDTH=3\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HANDLE_RADIUS", "20")
	t.Setenv("ENABLE_FILE_LOGGING", "TRUE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.HandleRadius != 20 {
		t.Errorf("Expected env HandleRadius 20, got %d", cfg.HandleRadius)
	}
	if cfg.LineWidth != 3 {
		t.Errorf("Expected file LineWidth 3, got %d", cfg.LineWidth)
	}
	if !cfg.EnableFileLogging {
		t.Error("Expected file logging to be enabled")
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	isolate(t, dir)
	path := filepath.Join(dir, "explicit.env")
	writeConfig(t, path, "HANDLE_RADIUS=15\n")

	cfg, err := LoadWithOptions(LoadOptions{PathOverride: path, HandleRadiusOverride: 25})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.HandleRadius != 25 {
		t.Errorf("Expected override HandleRadius 25, got %d", cfg.HandleRadius)
	}

	if _, err := LoadWithOptions(LoadOptions{PathOverride: filepath.Join(dir, "missing.env")}); err == nil {
		t.Error("Expected error for a missing explicit config path")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	isolate(t, dir)
	path := filepath.Join(dir, "region-capture", "config.env")
	writeConfig(t, path, "HANDLE_RADIUS=-3\nLINE_WIDTH=wide\nSELECTION_COLOR=red\nTEXT_COLOR=2,0,0,1\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.HandleRadius != DefaultHandleRadius || cfg.LineWidth != DefaultLineWidth {
		t.Errorf("Expected numeric defaults, got %+v", cfg)
	}
	if cfg.SelectionColor != DefaultSelectionColor || cfg.TextColor != DefaultTextColor {
		t.Errorf("Expected color defaults, got %+v", cfg)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"1,1,1,1", Color{R: 1, G: 1, B: 1, A: 1}, false},
		{" 0.5 , 0.25, 0 ", Color{R: 0.5, G: 0.25, A: 1}, false},
		{"0,0,0,0.5", Color{A: 0.5}, false},
		{"1,1", Color{}, true},
		{"1,1,1,1,1", Color{}, true},
		{"a,b,c", Color{}, true},
		{"-0.1,0,0", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestColorNRGBA(t *testing.T) {
	if got, want := DefaultShadeColor.NRGBA(), (color.NRGBA{A: 128}); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got, want := DefaultTextColor.NRGBA(), (color.NRGBA{R: 204, G: 204, B: 204, A: 255}); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
