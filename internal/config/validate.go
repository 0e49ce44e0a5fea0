package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	errs := []error{
		cfg.Redis.Validate(),
		cfg.Schedule.Validate(),
		cfg.PVOutput.Validate(),
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("configuration errors: %w", err)
	}
	return nil
}
