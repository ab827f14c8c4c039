package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const appDirName = "redditscraper"

// Collector modes.
const (
	ModeAPI    = "api"
	ModePublic = "public"
	ModeMock   = "mock"
)

// File picker kinds.
const (
	PickerNative = "native"
	PickerPrompt = "prompt"
)

type Config struct {
	ConfigDir      string        `env:"REDDITSCRAPER_CONFIG_DIR"`
	CollectorMode  string        `env:"COLLECTOR_MODE" default:"api"`
	UserAgent      string        `env:"REDDIT_USER_AGENT" default:"redditscraper/1.1"`
	PublicURL      string        `env:"REDDIT_PUBLIC_URL" default:"https://www.reddit.com"`
	ProbeSubreddit string        `env:"PROBE_SUBREDDIT" default:"python"`
	CommentTimeout time.Duration `env:"COMMENT_FETCH_TIMEOUT" default:"10s"`
	FilePicker     string        `env:"FILE_PICKER" default:"native"`
	LogLevel       string        `env:"LOG_LEVEL" default:"info"`
	LogFormat      string        `env:"LOG_FORMAT" default:"json"`
	LogFile        string        `env:"LOG_FILE"`
}

// CredentialsPath is the location of the saved login profiles.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.ConfigDir, "login_details.json")
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.ConfigDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate user config dir: %w", err)
		}
		cfg.ConfigDir = filepath.Join(base, appDirName)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.ConfigDir, appDirName+".log")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.CollectorMode {
	case ModeAPI, ModePublic, ModeMock:
	default:
		return fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
	switch cfg.FilePicker {
	case PickerNative, PickerPrompt:
	default:
		return fmt.Errorf("unknown FILE_PICKER: %s (use 'native' or 'prompt')", cfg.FilePicker)
	}
	if cfg.CommentTimeout <= 0 {
		return errors.New("COMMENT_FETCH_TIMEOUT must be positive")
	}
	if cfg.ProbeSubreddit == "" {
		return errors.New("PROBE_SUBREDDIT must not be empty")
	}
	return nil
}
