// Package config loads samgen settings from a YAML file and SAMGEN_*
// environment variables.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/reoring/samgen/internal/log"
	"github.com/reoring/samgen/jsonschema"
)

// Config is the root of samgen.yaml.
type Config struct {
	// Lang selects the language of decode error messages ("en" or "ja").
	Lang     string         `mapstructure:"lang"`
	Log      log.Options    `mapstructure:"log"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Generate GenerateConfig `mapstructure:"generate"`
	Template TemplateConfig `mapstructure:"template"`
}

// SchemaConfig controls schema decoding.
type SchemaConfig struct {
	Driver   string `mapstructure:"driver"`
	MaxDepth int    `mapstructure:"max_depth"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

// GenerateConfig names the generated Go package and type.
type GenerateConfig struct {
	Package string `mapstructure:"package"`
	Type    string `mapstructure:"type"`
}

// Load reads the configuration. With an empty path it looks for samgen.yaml
// in the working directory and falls back to defaults when there is none.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("lang", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("schema.driver", string(jsonschema.DriverGoJSON))
	v.SetDefault("schema.max_depth", 256)
	v.SetDefault("schema.max_bytes", 0)
	v.SetDefault("generate.package", "sam")
	v.SetDefault("generate.type", "Template")
	v.SetDefault("template.description", "A SAM template to deploy a Lambda function")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("samgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SAMGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DecodeOptions turns the schema section into decoder options.
func (c *Config) DecodeOptions() ([]jsonschema.Option, error) {
	d, err := jsonschema.ParseDriver(c.Schema.Driver)
	if err != nil {
		return nil, errors.Wrap(err, "schema.driver")
	}
	return []jsonschema.Option{
		jsonschema.WithDriver(d),
		jsonschema.WithLimits(c.Schema.MaxDepth, c.Schema.MaxBytes),
	}, nil
}

func validateConfig(cfg *Config) error {
	if _, err := jsonschema.ParseDriver(cfg.Schema.Driver); err != nil {
		return errors.Wrap(err, "schema.driver")
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	if cfg.Schema.MaxDepth < 0 || cfg.Schema.MaxBytes < 0 {
		return errors.New("schema limits must not be negative")
	}
	return nil
}
