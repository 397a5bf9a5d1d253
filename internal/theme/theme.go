package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// ErrThemeNotFound is returned when no user or bundled theme has the name.
var ErrThemeNotFound = errors.New("theme not found")

// TooltipColors are the tooltip fallbacks for tips without their own colors.
type TooltipColors struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Border     string `toml:"border"`
}

// ScreenColors style everything around the tooltip. Empty means the
// terminal default.
type ScreenColors struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Marker     string `toml:"marker"` // Anchor marker
	Muted      string `toml:"muted"`  // Help and hints
	Accent     string `toml:"accent"` // Status line
}

// Palette is the parsed content of a theme file.
type Palette struct {
	Tooltip TooltipColors `toml:"tooltip"`
	Screen  ScreenColors  `toml:"screen"`
}

// Theme represents a palette with metadata.
type Theme struct {
	Name      string // Theme name (without .toml extension)
	Path      string // Full path to the file (empty for bundled)
	IsBundled bool
	Palette
}

// Parse decodes a theme file.
func Parse(name string, data []byte) (*Theme, error) {
	var p Palette
	if err := toml.NewDecoder(strings.NewReader(string(data))).DisallowUnknownFields().Decode(&p); err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return &Theme{Name: name, Palette: p}, nil
}

// NewTheme loads a theme from a file.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// NewDefaultTheme returns the embedded default theme.
func NewDefaultTheme() *Theme {
	t, err := loadEmbedded(DefaultThemeName)
	if err != nil {
		return &Theme{Name: DefaultThemeName, IsBundled: true}
	}
	return t
}

// Load loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/tipwalk/themes/)
//  2. Embedded/bundled themes
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir, err := ThemesDir(); err == nil {
		path := filepath.Join(themesDir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			return NewTheme(name, path)
		}
	}

	return loadEmbedded(name)
}

func loadEmbedded(name string) (*Theme, error) {
	data, found := GetEmbeddedTheme(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.IsBundled = true
	return t, nil
}

// Apply fills empty colors in s from the theme.
func (t *Theme) Apply(s model.DrawingStyle) model.DrawingStyle {
	if s.ForegroundColor == "" {
		s.ForegroundColor = t.Tooltip.Foreground
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = t.Tooltip.Background
	}
	if s.BorderColor == "" {
		s.BorderColor = t.Tooltip.Border
	}
	return s
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tipwalk", "themes"), nil
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool // True if this is a bundled/embedded theme
}

// ListAvailableThemes lists all available themes (bundled + user).
// A user theme with a bundled name replaces the bundled entry.
func ListAvailableThemes() ([]ThemeInfo, error) {
	index := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	themesDir, err := ThemesDir()
	if err != nil {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".toml")
		info := ThemeInfo{
			Name:      name,
			Path:      filepath.Join(themesDir, entry.Name()),
			IsDefault: name == DefaultThemeName,
		}
		if i, ok := index[name]; ok {
			themes[i] = info
			continue
		}
		index[name] = len(themes)
		themes = append(themes, info)
	}

	return themes, nil
}
