package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ConfigPathEnvVar = "REGION_CAPTURE_CONFIG"
	appDirName       = "region-capture"
	configFileName   = "config.env"

	DefaultHandleRadius          = 10
	DefaultLineWidth             = 1
	DefaultDisplayHighlightWidth = 5
	DefaultModeTextSize          = 30
	DefaultFontFamily            = "monospace"
)

var (
	DefaultSelectionColor = Color{R: 1, G: 1, B: 1, A: 1}
	DefaultShadeColor     = Color{R: 0, G: 0, B: 0, A: 0.5}
	DefaultTextColor      = Color{R: 0.8, G: 0.8, B: 0.8, A: 1}
)

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// NRGBA converts c into an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func (c Color) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", c.R, c.G, c.B, c.A)
}

func channel(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// ParseColor reads "r,g,b,a" with each channel in [0, 1]. The alpha channel
// may be omitted.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("invalid color %q: expected r,g,b[,a]", s)
	}
	values := []float64{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("invalid color %q: channel %g out of range", s, v)
		}
		values[i] = v
	}
	return Color{R: values[0], G: values[1], B: values[2], A: values[3]}, nil
}

type LoadOptions struct {
	PathOverride         string
	HandleRadiusOverride int
}

type Config struct {
	Path                  string
	HandleRadius          int
	LineWidth             int
	DisplayHighlightWidth int
	SelectionColor        Color
	ShadeColor            Color
	TextColor             Color
	ModeTextSize          int
	FontFamily            string
	EnableFileLogging     bool
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HandleRadius:          DefaultHandleRadius,
		LineWidth:             DefaultLineWidth,
		DisplayHighlightWidth: DefaultDisplayHighlightWidth,
		SelectionColor:        DefaultSelectionColor,
		ShadeColor:            DefaultShadeColor,
		TextColor:             DefaultTextColor,
		ModeTextSize:          DefaultModeTextSize,
		FontFamily:            DefaultFontFamily,
	}
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions reads the dotenv config file and lets process environment
// variables of the same names override it. Invalid values are logged and
// replaced by their defaults; only an unreadable explicit path is an error.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	path := resolveConfigPath(opts)
	values := map[string]string{}
	if path != "" {
		v, err := godotenv.Read(path)
		switch {
		case err == nil:
			values = v
		case strings.TrimSpace(opts.PathOverride) != "":
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			log.Printf("Config: failed to read %s, using defaults: %v", path, err)
		}
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(values[key])
	}

	cfg := Default()
	cfg.Path = path
	cfg.HandleRadius = positiveInt(lookup, "HANDLE_RADIUS", cfg.HandleRadius)
	cfg.LineWidth = positiveInt(lookup, "LINE_WIDTH", cfg.LineWidth)
	cfg.DisplayHighlightWidth = positiveInt(lookup, "DISPLAY_HIGHLIGHT_WIDTH", cfg.DisplayHighlightWidth)
	cfg.ModeTextSize = positiveInt(lookup, "MODE_TEXT_SIZE", cfg.ModeTextSize)
	cfg.SelectionColor = colorValue(lookup, "SELECTION_COLOR", cfg.SelectionColor)
	cfg.ShadeColor = colorValue(lookup, "SHADE_COLOR", cfg.ShadeColor)
	cfg.TextColor = colorValue(lookup, "TEXT_COLOR", cfg.TextColor)
	if v := lookup("FONT_FAMILY"); v != "" {
		cfg.FontFamily = v
	}
	cfg.EnableFileLogging = strings.ToLower(lookup("ENABLE_FILE_LOGGING")) == "true"

	if opts.HandleRadiusOverride > 0 {
		cfg.HandleRadius = opts.HandleRadiusOverride
	}

	return cfg, nil
}

func resolveConfigPath(opts LoadOptions) string {
	if p := strings.TrimSpace(opts.PathOverride); p != "" {
		return p
	}

	if alt := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
		log.Printf("Config: %s=%s does not exist", ConfigPathEnvVar, alt)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appDirName, configFileName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func positiveInt(lookup func(string) string, key string, def int) int {
	v := lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Config: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func colorValue(lookup func(string) string, key string, def Color) Color {
	v := lookup(key)
	if v == "" {
		return def
	}
	c, err := ParseColor(v)
	if err != nil {
		log.Printf("Config: %v, using %v", err, def)
		return def
	}
	return c
}
