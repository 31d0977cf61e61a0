// Package config loads the legality engine configuration from a YAML file
// and MAGE_LEGALITY_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/magefree/mage-legality/internal/game/expr"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/game/rules"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MAGE_LEGALITY_LOGGING_LEVEL.
const EnvPrefix = "MAGE_LEGALITY"

// Config is the full configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// LoggingConfig controls the logger built by the CLI.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is json or console.
	Format string `mapstructure:"format"`
}

// EngineConfig holds the checker and evaluator defaults.
type EngineConfig struct {
	DefaultActivator   string        `mapstructure:"default_activator"`
	DefaultPresentZone string        `mapstructure:"default_present_zone"`
	AmountTimeout      time.Duration `mapstructure:"amount_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("engine.default_activator", restriction.DefaultActivator)
	v.SetDefault("engine.default_present_zone", string(rules.ZoneBattlefield))
	v.SetDefault("engine.amount_timeout", expr.DefaultAmountTimeout)
}

// Load reads the configuration at path. An empty path uses the defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that can't be checked by decoding alone.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if _, err := c.Engine.PresentZone(); err != nil {
		return fmt.Errorf("engine.default_present_zone: %w", err)
	}
	if c.Engine.AmountTimeout <= 0 {
		return fmt.Errorf("engine.amount_timeout must be positive, got %s", c.Engine.AmountTimeout)
	}
	return nil
}

// PresentZone parses DefaultPresentZone.
func (e EngineConfig) PresentZone() (rules.Zone, error) {
	return rules.ParseZone(e.DefaultPresentZone)
}

// CheckerOptions converts the engine settings into checker options.
func (e EngineConfig) CheckerOptions() ([]restriction.Option, error) {
	zone, err := e.PresentZone()
	if err != nil {
		return nil, err
	}
	return []restriction.Option{
		restriction.WithDefaultActivator(e.DefaultActivator),
		restriction.WithDefaultPresentZone(zone),
	}, nil
}

// EvaluatorOptions converts the engine settings into expression evaluator options.
func (e EngineConfig) EvaluatorOptions() []expr.Option {
	return []expr.Option{expr.WithAmountTimeout(e.AmountTimeout)}
}
