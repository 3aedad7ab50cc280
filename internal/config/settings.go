package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "ROIKIT"

// Settings are the resolved CLI settings.
type Settings struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Assumptions string `mapstructure:"assumptions"`
	Format      string `mapstructure:"format"`
	OutputDir   string `mapstructure:"output_dir"`
	Seed        int64  `mapstructure:"seed"`
	Workers     int    `mapstructure:"workers"`
}

// NewViper returns a viper instance with defaults and ROIKIT_* environment
// lookup. Flags bound by the caller take precedence over both.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("assumptions", "")
	v.SetDefault("format", "console")
	v.SetDefault("output_dir", "")
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 0)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads an optional settings file into v and resolves Settings.
func LoadSettings(v *viper.Viper, settingsFile string) (*Settings, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settingsFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	s.LogFormat = strings.ToLower(s.LogFormat)

	switch s.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, &FieldError{Field: "log_level", Reason: fmt.Sprintf("invalid log level %q", s.LogLevel)}
	}
	switch s.LogFormat {
	case "json", "console":
	default:
		return nil, &FieldError{Field: "log_format", Reason: fmt.Sprintf("invalid log format %q", s.LogFormat)}
	}
	if s.Workers < 0 {
		return nil, &FieldError{Field: "workers", Reason: "cannot be negative"}
	}
	return &s, nil
}

// LoadDotEnv loads environment variables from path when the file exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
