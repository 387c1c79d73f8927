// Package config loads application settings for the CLI and viewer.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Logger LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Viewer ViewerConfig   `mapstructure:"viewer" yaml:"viewer"`
	Popper PopperDefaults `mapstructure:"popper" yaml:"popper"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ViewerConfig configures the desktop viewer window.
type ViewerConfig struct {
	Width  float32 `mapstructure:"width" yaml:"width"`
	Height float32 `mapstructure:"height" yaml:"height"`
}

// PopperDefaults overrides the built-in popper defaults. They form the
// lowest precedence layer, below data attributes and explicit options.
// A negative MinContact means unset.
type PopperDefaults struct {
	Placement    string  `mapstructure:"placement" yaml:"placement"`
	Position     string  `mapstructure:"position" yaml:"position"`
	Spacing      float64 `mapstructure:"spacing" yaml:"spacing"`
	MinContact   float64 `mapstructure:"min_contact" yaml:"min_contact"`
	Fixed        bool    `mapstructure:"fixed" yaml:"fixed"`
	UseGPU       bool    `mapstructure:"use_gpu" yaml:"use_gpu"`
	NoAttributes bool    `mapstructure:"no_attributes" yaml:"no_attributes"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "popperctl")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)

	v.SetDefault("viewer.width", 1024)
	v.SetDefault("viewer.height", 768)

	v.SetDefault("popper.placement", "bottom")
	v.SetDefault("popper.position", "center")
	v.SetDefault("popper.spacing", 0)
	v.SetDefault("popper.min_contact", -1)
	v.SetDefault("popper.use_gpu", true)
}

// Load reads configuration from path (or popperctl.yaml in the working
// directory when path is empty) and POPPER_* environment variables. A
// missing default config file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("popperctl")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("POPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
