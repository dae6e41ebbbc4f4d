package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ThemeConfig holds TUI colour overrides on top of a named preset.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Source     string      `mapstructure:"source"`
	SourcePath string      `mapstructure:"source_path"`
	DataDir    string      `mapstructure:"data_dir"`
	Epoch      string      `mapstructure:"epoch"`
	Scale      string      `mapstructure:"scale"`
	LogLevel   string      `mapstructure:"log_level"`
	MaxWidth   int         `mapstructure:"max_width"`
	Theme      ThemeConfig `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.diary/).
func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", ".diary")
	}
	return filepath.Join(home, ".diary")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("source", "json")
	v.SetDefault("source_path", "")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("epoch", "")
	v.SetDefault("scale", "week")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_width", 100)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.danger", "")
	v.SetDefault("theme.background", "")
	v.SetDefault("theme.markdown_style", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "diary"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DIARY_SOURCE, DIARY_DATA_DIR, etc.
	v.SetEnvPrefix("DIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	var err error
	if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("expanding data_dir: %w", err)
	}
	if cfg.SourcePath, err = homedir.Expand(cfg.SourcePath); err != nil {
		return nil, fmt.Errorf("expanding source_path: %w", err)
	}
	if _, err := cfg.EpochTime(time.Local); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolvedSourcePath returns the configured source path, or the default
// location for the source kind inside the data directory.
func (c *Config) ResolvedSourcePath() string {
	if c.SourcePath != "" {
		return c.SourcePath
	}
	switch c.Source {
	case "markdown":
		return filepath.Join(c.DataDir, "entries")
	case "sqlite":
		return c.DataDir
	}
	return filepath.Join(c.DataDir, "entries.json")
}

// EpochTime parses the epoch setting. A zero time means "day of the earliest
// entry".
func (c *Config) EpochTime(loc *time.Location) (time.Time, error) {
	if c.Epoch == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", c.Epoch, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch %q (want YYYY-MM-DD): %w", c.Epoch, err)
	}
	return t, nil
}

// ParseLevel maps a log_level setting to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(level)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	if err != nil {
		logger.Warn("falling back to info logging", "error", err)
	}
	return logger
}
