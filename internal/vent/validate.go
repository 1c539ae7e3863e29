package vent

import "math"

// Validate reports the first parameter outside its valid range as a
// *ConfigError wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	checks := []struct {
		field string
		value float64
		ok    bool
		why   string
	}{
		{"volume", c.Volume, c.Volume > 0, "must be positive"},
		{"vent area", c.VentArea, c.VentArea >= 0, "must not be negative"},
		{"discharge coefficient", c.DischargeCoefficient, c.DischargeCoefficient > 0 && c.DischargeCoefficient <= 1, "must be in (0, 1]"},
		{"ambient pressure", c.AmbientPressure, c.AmbientPressure > 0, "must be positive"},
		{"ambient density", c.AmbientDensity, c.AmbientDensity > 0, "must be positive"},
		{"injected mass", c.InjectedMass, c.InjectedMass >= 0, "must not be negative"},
		{"injection duration", c.InjectionDuration, c.InjectionDuration > 0, "must be positive"},
		{"duration", c.Duration, c.Duration > 0, "must be positive"},
		{"dt", c.Dt, c.Dt > 0, "must be positive"},
		{"gas constant", c.GasConstant, c.GasConstant > 0, "must be positive"},
		{"temperature", c.Temperature, c.Temperature > 0, "must be positive"},
		{"initial pressure", c.InitialPressure, c.InitialPressure >= 0, "must not be negative"},
	}

	for _, chk := range checks {
		if math.IsNaN(chk.value) || math.IsInf(chk.value, 0) {
			return &ConfigError{Field: chk.field, Value: chk.value, Reason: "must be finite"}
		}
		if !chk.ok {
			return &ConfigError{Field: chk.field, Value: chk.value, Reason: chk.why}
		}
	}

	if c.Closure != TotalGas && c.Closure != InjectedOnly {
		return &ConfigError{Field: "closure", Value: float64(c.Closure), Reason: "unknown closure"}
	}

	return nil
}
