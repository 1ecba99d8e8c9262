// Package config loads and validates the missionscope settings from the
// config file, the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by missionscope,
// e.g. MISSIONSCOPE_SCAN_CONFIRM_THRESHOLD.
const EnvPrefix = "MISSIONSCOPE"

type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
}

type ScanConfig struct {
	ConfirmThreshold int           `mapstructure:"confirm_threshold" validate:"gte=1"`
	WatchDebounce    time.Duration `mapstructure:"watch_debounce" validate:"gte=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn warning error fatal"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

type ExportConfig struct {
	Path    string `mapstructure:"path" validate:"required"`
	CSVPath string `mapstructure:"csv_path" validate:"required"`
}

var validate = validator.New()

// SetDefaults registers every key with its default value and binds the
// environment.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("scan.confirm_threshold", 50)
	v.SetDefault("scan.watch_debounce", "2s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("export.path", "missions_export.json")
	v.SetDefault("export.csv_path", "missions_filtrees.csv")
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files, or ./.env when
// none is given. Missing files are ignored; variables already set in the
// environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
