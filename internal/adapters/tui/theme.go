package tui

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/tomato/internal/config"
	"github.com/xvierd/tomato/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// modeColor returns the accent color of a mode. A stopped timer uses the
// paused color.
func modeColor(theme config.ThemeConfig, mode domain.Mode, running bool) lipgloss.Color {
	if !running {
		return lipgloss.Color(theme.ColorPaused)
	}
	switch mode {
	case domain.ModeShortBreak:
		return lipgloss.Color(theme.ColorShortBreak)
	case domain.ModeLongBreak:
		return lipgloss.Color(theme.ColorLongBreak)
	default:
		return lipgloss.Color(theme.ColorFocus)
	}
}

// PanelBackground composes the panel color with its opacity. Terminals
// have no alpha channel, so the color is blended over black.
func PanelBackground(hex string, opacityPct int) lipgloss.Color {
	r, g, b, err := parseHex(hex)
	if err != nil {
		r, g, b, _ = parseHex(config.DefaultThemeConfig().PanelColor)
	}
	if opacityPct < 0 {
		opacityPct = 0
	}
	if opacityPct > 100 {
		opacityPct = 100
	}
	scale := func(c uint8) uint8 { return uint8(int(c) * opacityPct / 100) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b)))
}

// parseHex reads #rgb or #rrggbb.
func parseHex(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
