package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	UILine = "line"
	UITUI  = "tui"

	keyAPIBaseURL      = "api_base_url"
	keyInitialScreenID = "initial_screen_id"
	keyTimeout         = "timeout"
	keyEnvironment     = "environment"
	keyLogLevel        = "log_level"
	keyLogFile         = "log_file"
	keyUI              = "ui"
	keyWrapWidth       = "wrap_width"
	keyColor           = "color"

	// ConfigPathEnv points at a YAML config file. Without it,
	// $HOME/.adventure/config.yaml is read if it exists.
	ConfigPathEnv = "CONSOLE_CONFIG"
)

type Config struct {
	APIBaseURL      string
	InitialScreenID string
	Timeout         time.Duration
	Environment     string
	LogLevel        slog.Level
	LogFile         string
	UI              string
	WrapWidth       int
	Color           bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAPIBaseURL, "https://text-adventure.winsauce.com/api")
	v.SetDefault(keyInitialScreenID, "0290922a-59ce-458b-8dbc-1c33f646580a")
	v.SetDefault(keyTimeout, 30*time.Second)
	v.SetDefault(keyEnvironment, "development")
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyUI, UILine)
	v.SetDefault(keyWrapWidth, 0)
	v.SetDefault(keyColor, false)
}

// Load reads defaults, then the optional config file, then the environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	path, explicit := configPath()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		APIBaseURL:      strings.TrimRight(v.GetString(keyAPIBaseURL), "/"),
		InitialScreenID: strings.TrimSpace(v.GetString(keyInitialScreenID)),
		Timeout:         v.GetDuration(keyTimeout),
		Environment:     v.GetString(keyEnvironment),
		LogLevel:        parseLogLevel(v.GetString(keyLogLevel)),
		LogFile:         v.GetString(keyLogFile),
		UI:              strings.ToLower(v.GetString(keyUI)),
		WrapWidth:       v.GetInt(keyWrapWidth),
		Color:           v.GetBool(keyColor),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns the file to read and whether the user asked for it.
func configPath() (string, bool) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, true
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	p := filepath.Join(dir, ".adventure", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, false
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: must be an absolute http(s) URL", c.APIBaseURL)
	}
	if err := uuid.Validate(c.InitialScreenID); err != nil {
		return fmt.Errorf("invalid INITIAL_SCREEN_ID %q: %w", c.InitialScreenID, err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid TIMEOUT %s: must be positive", c.Timeout)
	}
	if c.UI != UILine && c.UI != UITUI {
		return fmt.Errorf("invalid UI %q: must be %q or %q", c.UI, UILine, UITUI)
	}
	if c.WrapWidth < 0 {
		return fmt.Errorf("invalid WRAP_WIDTH %d: must not be negative", c.WrapWidth)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
