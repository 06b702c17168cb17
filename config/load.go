package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for a matching engine instance.
type Config struct {
	Pair        string        `yaml:"pair"`
	IDMode      string        `yaml:"idMode"` // guid or sequential
	Logging     LoggingConfig `yaml:"logging"`
	MetricsAddr string        `yaml:"metricsAddr"` // empty disables the metrics endpoint
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// ID generation modes.
const (
	IDModeGUID       = "guid"
	IDModeSequential = "sequential"
)

// Default returns a configuration that runs without a config file.
func Default() Config {
	return Config{
		Pair:   "BTC_USD",
		IDMode: IDModeGUID,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads YAML config from path, fills unset fields from Default and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
