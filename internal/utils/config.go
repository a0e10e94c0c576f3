package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Output OutputConfig `mapstructure:"output"`
	Update UpdateConfig `mapstructure:"update"`
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig controls the self-update command.
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}

// LoadConfig loads configuration from the given file (or the standard
// locations when empty), environment variables prefixed with ELFREADER_,
// and built-in defaults, in that order of precedence.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", true)
	v.SetDefault("update.repository", "fluffinity/elfreader")

	v.SetConfigType("yaml")
	v.SetEnvPrefix("ELFREADER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.elfreader")
		v.AddConfigPath("/etc/elfreader")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// No config file is fine; defaults and env vars apply.
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.LogFormat)
	}
	return nil
}
