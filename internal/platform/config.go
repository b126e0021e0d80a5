package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/mininotes/pkg/core"
)

// Config is the file and environment configuration of the CLI.
// Values come from a YAML file when present and are then overridden by
// MININOTES_* environment variables.
type Config struct {
	DataDir          string        `yaml:"data_dir" env:"MININOTES_DATA_DIR"`
	LogLevel         string        `yaml:"log_level" env:"MININOTES_LOG_LEVEL" env-default:"info"`
	LogFile          string        `yaml:"log_file" env:"MININOTES_LOG_FILE"`
	Pretty           bool          `yaml:"pretty" env:"MININOTES_PRETTY"`
	MaxTextLength    int           `yaml:"max_text_length" env:"MININOTES_MAX_TEXT_LENGTH" env-default:"10000"`
	SeedLimit        int           `yaml:"seed_limit" env:"MININOTES_SEED_LIMIT" env-default:"500"`
	SerializeUpdates bool          `yaml:"serialize_updates" env:"MININOTES_SERIALIZE_UPDATES"`
	SweepOnOpen      bool          `yaml:"sweep_on_open" env:"MININOTES_SWEEP_ON_OPEN"`
	SweepGrace       time.Duration `yaml:"sweep_grace" env:"MININOTES_SWEEP_GRACE" env-default:"1h"`
	DisableDevSafety bool          `yaml:"disable_dev_safety" env:"MININOTES_DISABLE_DEV_SAFETY"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		MaxTextLength: core.DefaultMaxTextLength,
		SeedLimit:     core.DefaultSeedLimit,
		SweepGrace:    DefaultSweepGrace,
	}
}

// LoadConfig reads the configuration. A .env file in the working directory
// is loaded into the environment first. A missing file at path is not an
// error; environment variables and defaults still apply.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			return cfg, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config from env: %w", err)
	}
	return cfg, nil
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Options converts the configuration into store options.
func (c Config) Options() []Option {
	opts := []Option{
		WithMaxTextLength(c.MaxTextLength),
		WithSeedLimit(c.SeedLimit),
		WithSerializedUpdates(c.SerializeUpdates),
		WithDevSafety(!c.DisableDevSafety),
	}
	if c.SweepOnOpen {
		opts = append(opts, WithSweepOnOpen(c.SweepGrace))
	}
	return opts
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// WriteConfig writes cfg as YAML to path, creating parent directories.
// An existing file is only replaced when overwrite is set.
func WriteConfig(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}

	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
