package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Source        string        `yaml:"source"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	Columns       int           `yaml:"columns"`
	Timezone      string        `yaml:"timezone"`
	StatsSource   string        `yaml:"stats_source"`
	StatsInterval time.Duration `yaml:"stats_interval"`
	SaveDirectory string        `yaml:"save_directory"`
	Log           LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level slog.Level `yaml:"level"`
	File  string     `yaml:"file"`
}

func newDefaultConfig() *Config {
	return &Config{
		Source:        "user_inputs.json",
		PollInterval:  2 * time.Second,
		Columns:       defaultColumns,
		Timezone:      "Local",
		StatsInterval: time.Second,
		Log: LogConfig{
			Level: slog.LevelInfo,
		},
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.PollInterval, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&c.Columns, validation.Required, validation.Min(1), validation.Max(64)),
		validation.Field(&c.StatsInterval, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&c.Timezone, validation.By(func(any) error {
			_, err := c.Location()
			return err
		})),
	)
}

// Location resolves Timezone; empty and "Local" both mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".stickywall.yaml")
}

// loadConfig reads the YAML config at path over the defaults. When path is
// empty the per-user file is tried and silently skipped if absent.
func loadConfig(path string) (*Config, error) {
	config := newDefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return config, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	config.SaveDirectory = expandHome(config.SaveDirectory)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// newLogger writes JSON logs to the configured file. The terminal belongs
// to the UI, so without a file logs are dropped.
func (c *Config) newLogger() (*slog.Logger, io.Closer, error) {
	if c.Log.File == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: c.Log.Level}))
	return logger, f, nil
}
