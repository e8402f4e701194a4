package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/tomato/internal/domain"
)

// Setting is one key/value pair as shown by `tomato config`.
type Setting struct {
	Key   string
	Value string
}

type setting struct {
	key string
	get func(c *Config) any
	set func(c *Config, value string) error
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// settings lists every key in file order.
var settings = []setting{
	{"timer.focus", func(c *Config) any { return c.Timer.Focus }, minutes(func(c *Config) *int { return &c.Timer.Focus })},
	{"timer.short_break", func(c *Config) any { return c.Timer.ShortBreak }, minutes(func(c *Config) *int { return &c.Timer.ShortBreak })},
	{"timer.long_break", func(c *Config) any { return c.Timer.LongBreak }, minutes(func(c *Config) *int { return &c.Timer.LongBreak })},
	{"timer.auto_start_breaks", func(c *Config) any { return c.Timer.AutoStartBreaks }, boolean(func(c *Config) *bool { return &c.Timer.AutoStartBreaks })},
	{"timer.auto_start_focus", func(c *Config) any { return c.Timer.AutoStartFocus }, boolean(func(c *Config) *bool { return &c.Timer.AutoStartFocus })},
	{"timer.tick_interval", func(c *Config) any { return c.Timer.TickInterval.String() }, duration(func(c *Config) *time.Duration { return &c.Timer.TickInterval }, false)},
	{"timer.transition_delay", func(c *Config) any { return c.Timer.TransitionDelay.String() }, duration(func(c *Config) *time.Duration { return &c.Timer.TransitionDelay }, true)},
	{"sound.tick", func(c *Config) any { return c.Sound.Tick }, boolean(func(c *Config) *bool { return &c.Sound.Tick })},
	{"sound.completion", func(c *Config) any { return c.Sound.Completion }, boolean(func(c *Config) *bool { return &c.Sound.Completion })},
	{"notifications.enabled", func(c *Config) any { return c.Notifications.Enabled }, boolean(func(c *Config) *bool { return &c.Notifications.Enabled })},
	{"storage.data_dir", func(c *Config) any { return c.Storage.DataDir }, text(func(c *Config) *string { return &c.Storage.DataDir })},
	{"theme.color_focus", func(c *Config) any { return c.Theme.ColorFocus }, color(func(c *Config) *string { return &c.Theme.ColorFocus })},
	{"theme.color_short_break", func(c *Config) any { return c.Theme.ColorShortBreak }, color(func(c *Config) *string { return &c.Theme.ColorShortBreak })},
	{"theme.color_long_break", func(c *Config) any { return c.Theme.ColorLongBreak }, color(func(c *Config) *string { return &c.Theme.ColorLongBreak })},
	{"theme.color_paused", func(c *Config) any { return c.Theme.ColorPaused }, color(func(c *Config) *string { return &c.Theme.ColorPaused })},
	{"theme.color_help", func(c *Config) any { return c.Theme.ColorHelp }, color(func(c *Config) *string { return &c.Theme.ColorHelp })},
	{"theme.panel_color", func(c *Config) any { return c.Theme.PanelColor }, color(func(c *Config) *string { return &c.Theme.PanelColor })},
	{"theme.panel_opacity", func(c *Config) any { return c.Theme.PanelOpacity }, percent(func(c *Config) *int { return &c.Theme.PanelOpacity })},
	{"log.level", func(c *Config) any { return c.Log.Level }, logLevel},
}

// Keys returns every setting key.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

// Settings returns the current value of every setting.
func (c *Config) Settings() []Setting {
	out := make([]Setting, len(settings))
	for i, s := range settings {
		out[i] = Setting{Key: s.key, Value: fmt.Sprint(s.get(c))}
	}
	return out
}

// Set parses value and stores it under key. Session lengths are clamped
// rather than rejected. Unknown keys report the closest known key.
func (c *Config) Set(key, value string) error {
	key = NormalizeKey(key)
	for _, s := range settings {
		if s.key == key {
			if err := s.set(c, strings.TrimSpace(value)); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			return nil
		}
	}
	if suggestion := Suggest(key); suggestion != "" {
		return fmt.Errorf("%w %q (did you mean %q?)", domain.ErrUnknownSetting, key, suggestion)
	}
	return fmt.Errorf("%w %q", domain.ErrUnknownSetting, key)
}

// NormalizeKey returns key in the form used by the settings table.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Suggest returns the known key that best matches a mistyped one.
func Suggest(key string) string {
	matches := fuzzy.Find(key, Keys())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func invalid(value, want string) error {
	return fmt.Errorf("%w %q: expected %s", domain.ErrInvalidValue, value, want)
}

func minutes(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(value, "whole minutes")
		}
		*field(c) = domain.ClampMinutes(n)
		return nil
	}
}

func boolean(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(value, "true or false")
		}
		*field(c) = b
		return nil
	}
}

func duration(field func(*Config) *time.Duration, allowZero bool) func(*Config, string) error {
	return func(c *Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 || (d == 0 && !allowZero) {
			return invalid(value, "a positive duration such as 250ms")
		}
		*field(c) = d
		return nil
	}
}

func text(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, value string) error {
		if value == "" {
			return invalid(value, "a non-empty value")
		}
		*field(c) = value
		return nil
	}
}

func color(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, value string) error {
		if !hexColor.MatchString(value) {
			return invalid(value, "a hex color such as #E5533D")
		}
		*field(c) = value
		return nil
	}
}

func percent(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil || n < 0 || n > 100 {
			return invalid(value, "a percentage between 0 and 100")
		}
		*field(c) = n
		return nil
	}
}

func logLevel(c *Config, value string) error {
	switch strings.ToLower(value) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(value)
		return nil
	}
	return invalid(value, "debug, info, warn or error")
}
