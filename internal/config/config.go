// Package config provides configuration management for Tomato.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/tomato/internal/domain"
)

// EnvPrefix is prepended to every environment override, e.g.
// TOMATO_TIMER_FOCUS=50.
const EnvPrefix = "TOMATO"

const defaultDataDir = "~/.tomato"

// Config holds all configuration for the Tomato application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Sound         SoundConfig        `mapstructure:"sound"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
	Log           LogConfig          `mapstructure:"log"`
}

// TimerConfig holds session lengths (in minutes) and engine pacing.
type TimerConfig struct {
	Focus           int           `mapstructure:"focus"`
	ShortBreak      int           `mapstructure:"short_break"`
	LongBreak       int           `mapstructure:"long_break"`
	AutoStartBreaks bool          `mapstructure:"auto_start_breaks"`
	AutoStartFocus  bool          `mapstructure:"auto_start_focus"`
	TickInterval    time.Duration `mapstructure:"tick_interval"`
	TransitionDelay time.Duration `mapstructure:"transition_delay"`
}

// SoundConfig toggles the audio cues.
type SoundConfig struct {
	Tick       bool `mapstructure:"tick"`
	Completion bool `mapstructure:"completion"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds the colors of the timer screen.
type ThemeConfig struct {
	ColorFocus      string `mapstructure:"color_focus"`
	ColorShortBreak string `mapstructure:"color_short_break"`
	ColorLongBreak  string `mapstructure:"color_long_break"`
	ColorPaused     string `mapstructure:"color_paused"`
	ColorHelp       string `mapstructure:"color_help"`
	PanelColor      string `mapstructure:"panel_color"`
	// PanelOpacity is a percentage from 0 (transparent) to 100.
	PanelOpacity int `mapstructure:"panel_opacity"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:      "#E5533D",
		ColorShortBreak: "#4ECDC4",
		ColorLongBreak:  "#3A86FF",
		ColorPaused:     "#6B7280",
		ColorHelp:       "#95A5A6",
		PanelColor:      "#1F2937",
		PanelOpacity:    85,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			Focus:           domain.DefaultFocusMinutes,
			ShortBreak:      domain.DefaultShortBreakMinutes,
			LongBreak:       domain.DefaultLongBreakMinutes,
			TickInterval:    250 * time.Millisecond,
			TransitionDelay: time.Second,
		},
		Sound: SoundConfig{
			Tick:       false,
			Completion: true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Theme: DefaultThemeConfig(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from the default config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating the file with
// defaults when it does not exist. TOMATO_* environment variables
// override file values.
func LoadFrom(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes every setting of cfg to path.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	for _, s := range settings {
		v.Set(s.key, s.get(cfg))
	}

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tomato", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "tomato.db")
}

// GetLogPath returns the path to the log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "tomato.log")
}

// TimerConfig converts the config to the engine's domain configuration.
// Durations are clamped to the supported range.
func (c *Config) TimerConfig() domain.TimerConfig {
	return domain.TimerConfig{
		Focus:           c.Timer.Focus,
		ShortBreak:      c.Timer.ShortBreak,
		LongBreak:       c.Timer.LongBreak,
		AutoStartBreaks: c.Timer.AutoStartBreaks,
		AutoStartFocus:  c.Timer.AutoStartFocus,
		TickSound:       c.Sound.Tick,
		CompletionSound: c.Sound.Completion,
	}.Normalized()
}

// ApplyTimerConfig copies an engine configuration back into c.
func (c *Config) ApplyTimerConfig(tc domain.TimerConfig) {
	tc = tc.Normalized()
	c.Timer.Focus = tc.Focus
	c.Timer.ShortBreak = tc.ShortBreak
	c.Timer.LongBreak = tc.LongBreak
	c.Timer.AutoStartBreaks = tc.AutoStartBreaks
	c.Timer.AutoStartFocus = tc.AutoStartFocus
	c.Sound.Tick = tc.TickSound
	c.Sound.Completion = tc.CompletionSound
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	for _, s := range settings {
		v.SetDefault(s.key, s.get(defaults))
	}
}

func expandHome(dir string) (string, error) {
	if dir == "" {
		dir = defaultDataDir
	}
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~")), nil
}
