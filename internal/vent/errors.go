package vent

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidConfig indicates a parameter outside its valid range. It is
	// returned before any step is taken.
	ErrInvalidConfig = errors.New("vent: invalid configuration")

	// ErrNoAreas indicates a sweep with nothing to run.
	ErrNoAreas = errors.New("vent: sweep needs at least one vent area")
)

// ConfigError names the offending field of a rejected Config.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vent: invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
