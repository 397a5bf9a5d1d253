// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// Default configuration values. The terminal host works in cells, so these
// are much smaller than the point-based library defaults in model.
const (
	DefaultScreenInset         = 1
	DefaultArrowMargin         = 0
	DefaultTextLayerAdjustment = 0
	DefaultArrowHeight         = 1
	DefaultHorizontalInset     = 2
	DefaultVerticalInset       = 1
	DefaultMaxWidth            = 40
	DefaultMarker              = "◆"
	DefaultThemeName           = "default"
)

// Config represents the tipwalk configuration.
type Config struct {
	Geometry    GeometryConfig    `toml:"geometry"`
	Theme       ThemeConfig       `toml:"theme"`
	Drawing     DrawingConfig     `toml:"drawing"`
	Positioning PositioningConfig `toml:"positioning"`
	TUI         TUIConfig         `toml:"tui"`
	Clipboard   ClipboardConfig   `toml:"clipboard"`
}

// GeometryConfig holds the layout margins.
type GeometryConfig struct {
	ScreenInset         float64 `toml:"screen_inset"`          // Minimum distance from the screen edge
	ArrowMargin         float64 `toml:"arrow_margin"`          // Extra margin for the arrow
	TextLayerAdjustment float64 `toml:"text_layer_adjustment"` // Extra body height
}

// ThemeConfig selects the color palette.
type ThemeConfig struct {
	Name string `toml:"name"` // Bundled theme name
}

// DrawingConfig holds the default drawing style for tour tips.
// Empty colors fall back to the theme.
type DrawingConfig struct {
	Foreground  string  `toml:"foreground"`
	Background  string  `toml:"background"`
	Border      string  `toml:"border"`
	BorderWidth float64 `toml:"border_width"`
	ArrowHeight float64 `toml:"arrow_height"`
	ArrowWidth  float64 `toml:"arrow_width"`
}

// PositioningConfig holds the default positioning style for tour tips.
type PositioningConfig struct {
	HorizontalInset float64 `toml:"horizontal_inset"`
	VerticalInset   float64 `toml:"vertical_inset"`
	MaxWidth        float64 `toml:"max_width"`
}

// TUIConfig holds terminal host settings.
type TUIConfig struct {
	AdvanceOnTap bool   `toml:"advance_on_tap"` // A tap dismisses the current tip
	ShowHelp     bool   `toml:"show_help"`
	Mouse        bool   `toml:"mouse"`
	Marker       string `toml:"marker"` // Glyph drawn at each anchor
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Geometry: GeometryConfig{
			ScreenInset:         DefaultScreenInset,
			ArrowMargin:         DefaultArrowMargin,
			TextLayerAdjustment: DefaultTextLayerAdjustment,
		},
		Theme: ThemeConfig{
			Name: DefaultThemeName,
		},
		Drawing: DrawingConfig{
			BorderWidth: 1,
			ArrowHeight: DefaultArrowHeight,
			ArrowWidth:  DefaultArrowHeight,
		},
		Positioning: PositioningConfig{
			HorizontalInset: DefaultHorizontalInset,
			VerticalInset:   DefaultVerticalInset,
			MaxWidth:        DefaultMaxWidth,
		},
		TUI: TUIConfig{
			AdvanceOnTap: true,
			ShowHelp:     true,
			Mouse:        true,
			Marker:       DefaultMarker,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tipwalk", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Constants converts the geometry section for the layout engine.
func (g GeometryConfig) Constants() geometry.Constants {
	return geometry.Constants{
		ScreenInset:         g.ScreenInset,
		ArrowMargin:         g.ArrowMargin,
		TextLayerAdjustment: g.TextLayerAdjustment,
	}
}

// Style converts the drawing section into a model style. Empty colors stay
// empty so a theme can fill them in.
func (d DrawingConfig) Style() model.DrawingStyle {
	return model.DrawingStyle{
		ForegroundColor: d.Foreground,
		BackgroundColor: d.Background,
		BorderColor:     d.Border,
		BorderWidth:     d.BorderWidth,
		ArrowHeight:     d.ArrowHeight,
		ArrowWidth:      d.ArrowWidth,
	}
}

// Style converts the positioning section into a model style.
func (p PositioningConfig) Style() model.PositioningStyle {
	return model.PositioningStyle{
		HorizontalInset: p.HorizontalInset,
		VerticalInset:   p.VerticalInset,
		MaxWidth:        p.MaxWidth,
	}
}
