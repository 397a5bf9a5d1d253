package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tipwalk/internal/model"
)

func TestListEmbeddedThemes(t *testing.T) {
	assert.ElementsMatch(t, BundledThemes, ListEmbeddedThemes())
}

func TestEmbeddedThemesParse(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedTheme(name)
			require.True(t, found)

			_, err := Parse(name, data)
			require.NoError(t, err)
		})
	}
}

func TestIsEmbeddedTheme(t *testing.T) {
	assert.True(t, IsEmbeddedTheme("default"))
	assert.False(t, IsEmbeddedTheme("nonexistent"))
}

func TestNewDefaultTheme(t *testing.T) {
	theme := NewDefaultTheme()
	assert.Equal(t, DefaultThemeName, theme.Name)
	assert.True(t, theme.IsBundled)
	assert.Equal(t, "#f9e2af", theme.Tooltip.Background)
	assert.Equal(t, "#f38ba8", theme.Screen.Marker)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse("broken", []byte("[tooltip]\nforground = \"#000000\"\n"))
	assert.Error(t, err)
}

func TestLoad_Bundled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	theme, err := Load("catppuccin")
	require.NoError(t, err)
	assert.True(t, theme.IsBundled)
	assert.Equal(t, "#313244", theme.Tooltip.Background)

	theme, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, theme.Name)
}

func TestLoad_NotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load("nonexistent")
	assert.ErrorIs(t, err, ErrThemeNotFound)
}

func TestLoad_UserOverridesBundled(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "tipwalk", "themes")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "[tooltip]\nbackground = \"#000000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.toml"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.toml"), []byte(content), 0644))

	theme, err := Load("default")
	require.NoError(t, err)
	assert.False(t, theme.IsBundled)
	assert.Equal(t, "#000000", theme.Tooltip.Background)
	assert.Equal(t, filepath.Join(dir, "default.toml"), theme.Path)

	themes, err := ListAvailableThemes()
	require.NoError(t, err)

	byName := make(map[string]ThemeInfo)
	for _, info := range themes {
		byName[info.Name] = info
	}
	assert.Len(t, themes, len(BundledThemes)+1)
	assert.False(t, byName["default"].IsBundled)
	assert.True(t, byName["default"].IsDefault)
	assert.True(t, byName["minimal"].IsBundled)
	assert.Contains(t, byName, "mine")
}

func TestTheme_Apply(t *testing.T) {
	theme := NewDefaultTheme()

	styled := theme.Apply(model.DrawingStyle{ForegroundColor: "#123456", ArrowHeight: 1})
	assert.Equal(t, "#123456", styled.ForegroundColor)
	assert.Equal(t, theme.Tooltip.Background, styled.BackgroundColor)
	assert.Equal(t, theme.Tooltip.Border, styled.BorderColor)
	assert.Equal(t, 1.0, styled.ArrowHeight)
}
