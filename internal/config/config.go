// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/quill/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Editor EditorConfig  `toml:"editor"`
	Theme  ThemeConfig   `toml:"theme"`
}

// EditorConfig holds document and editor settings.
type EditorConfig struct {
	TabWidth            int    `toml:"tab_width"`
	MaxHistory          int    `toml:"max_history"` // <= 0 keeps every edit
	SystemClipboard     bool   `toml:"system_clipboard"`
	AsyncHighlight      bool   `toml:"async_highlight"`
	HighlightDebounceMs int    `toml:"highlight_debounce_ms"`
	DefaultLanguage     string `toml:"default_language"` // Used for files with unknown extensions
}

// HighlightDebounce returns the async highlighting delay.
func (e EditorConfig) HighlightDebounce() time.Duration {
	return time.Duration(e.HighlightDebounceMs) * time.Millisecond
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name string `toml:"name"` // Built-in theme name
	File string `toml:"file"` // TOML theme file, takes precedence over Name
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:            DefaultTabWidth,
			MaxHistory:          DefaultMaxHistory,
			SystemClipboard:     DefaultSystemClipboard,
			AsyncHighlight:      DefaultAsyncHighlight,
			HighlightDebounceMs: int(DefaultHighlightDebounce / time.Millisecond),
			DefaultLanguage:     DefaultLanguage,
		},
	}
}

// DefaultPath returns ~/.config/quill/config.toml, or "" when there is no config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	logger.Infof("Loaded configuration from: %s", filePath)
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.MaxHistory < 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.HighlightDebounceMs < 0 {
		c.Editor.HighlightDebounceMs = defaults.Editor.HighlightDebounceMs
	}
	if c.Editor.DefaultLanguage == "" {
		c.Editor.DefaultLanguage = defaults.Editor.DefaultLanguage
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig loads defaults, then the TOML file at configFilePath (or DefaultPath when
// empty), then flag overrides, then validates. A parse error is returned together with
// a usable config built without the file.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultPath()
	}

	var loadErr error
	if path != "" {
		fileCfg := NewDefaultConfig()
		if err := loadFromFile(fileCfg, path); err != nil {
			loadErr = err
		} else {
			cfg = fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, loadErr
}
