package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tipwalk/internal/canvas"
	"github.com/jmylchreest/tipwalk/internal/model"
	"github.com/jmylchreest/tipwalk/internal/theme"
)

// canvasStyles builds the cell styles for one tooltip. Tip colors win over
// the theme.
func canvasStyles(t *theme.Theme, d model.DrawingStyle) canvas.Styles {
	d = t.Apply(d)
	screen := background(foreground(lipgloss.NewStyle(), t.Screen.Foreground), t.Screen.Background)

	return canvas.Styles{
		canvas.StyleScreen: screen,
		canvas.StyleMarker: foreground(screen, t.Screen.Marker).Bold(true),
		canvas.StyleMuted:  foreground(screen, t.Screen.Muted),
		canvas.StyleBody:   background(lipgloss.NewStyle(), d.BackgroundColor),
		canvas.StyleBorder: background(foreground(lipgloss.NewStyle(), d.BorderColor), d.BackgroundColor),
		canvas.StyleText:   background(foreground(lipgloss.NewStyle(), d.ForegroundColor), d.BackgroundColor),
		canvas.StyleArrow:  foreground(screen, d.BorderColor),
	}
}

func foreground(s lipgloss.Style, color string) lipgloss.Style {
	if color == "" {
		return s
	}
	return s.Foreground(lipgloss.Color(color))
}

func background(s lipgloss.Style, color string) lipgloss.Style {
	if color == "" {
		return s
	}
	return s.Background(lipgloss.Color(color))
}

// statusStyles are the footer styles.
type statusStyles struct {
	info  lipgloss.Style
	err   lipgloss.Style
	muted lipgloss.Style
	title lipgloss.Style
}

func newStatusStyles(t *theme.Theme) statusStyles {
	return statusStyles{
		info:  foreground(lipgloss.NewStyle(), t.Screen.Accent),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted: foreground(lipgloss.NewStyle().Foreground(lipgloss.Color("8")), t.Screen.Muted),
		title: foreground(lipgloss.NewStyle().Bold(true).MarginBottom(1), t.Screen.Accent),
	}
}
