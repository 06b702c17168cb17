package config

import (
	"errors"
	"fmt"
)

// Validate ensures required fields are present and enums are known.
func Validate(cfg Config) error {
	if cfg.Pair == "" {
		return errors.New("pair is required")
	}
	switch cfg.IDMode {
	case IDModeGUID, IDModeSequential:
	default:
		return fmt.Errorf("idMode must be %q or %q, got %q", IDModeGUID, IDModeSequential, cfg.IDMode)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	return nil
}
