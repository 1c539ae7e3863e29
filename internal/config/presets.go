package config

import (
	"sort"

	"github.com/san-kum/ventsim/internal/vent"
)

var Presets = map[string]*Scenario{
	// 50 m³ room, 5 kg over 0.2 ms, 10 ms window.
	"reference": DefaultScenario(),

	// Same charge followed for half a second.
	"dynamic": {
		Name:      "dynamic",
		Enclosure: EnclosureConfig{Volume: 50},
		Vent:      VentConfig{Area: 0.01, DischargeCoefficient: 0.7},
		Ambient:   air(),
		Injection: InjectionConfig{Mass: 5, Duration: 0.0002},
		Dt:        1e-6,
		Duration:  0.5,
		Closure:   vent.TotalGas.String(),
		Sweep:     SweepConfig{Areas: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0}},
	},

	// 100 kg over 1 ms, coarser step, used for impulse comparisons.
	"impulse": {
		Name:      "impulse",
		Enclosure: EnclosureConfig{Volume: 50},
		Vent:      VentConfig{Area: 0.01, DischargeCoefficient: 0.7},
		Ambient:   air(),
		Injection: InjectionConfig{Mass: 100, Duration: 0.001},
		Dt:        1e-5,
		Duration:  0.1,
		Closure:   vent.TotalGas.String(),
		Sweep:     SweepConfig{Areas: []float64{0.01, 0.05, 0.1, 0.2, 1, 10}},
	},

	// 0.8 kg of hot detonation gas in a 5 m³ cell, tracked without the
	// ambient air.
	"gas-only": {
		Name:      "gas-only",
		Enclosure: EnclosureConfig{Volume: 5},
		Vent:      VentConfig{Area: 0.0005, DischargeCoefficient: 0.7},
		Ambient: AmbientConfig{
			Pressure:    vent.DefaultAmbientPressure,
			Density:     vent.DefaultAmbientDensity,
			Temperature: 3000,
			GasConstant: 8.314 / 29e-3,
		},
		Injection: InjectionConfig{Mass: 0.8, Duration: 0.0001},
		Dt:        1e-6,
		Duration:  0.1,
		Closure:   vent.InjectedOnly.String(),
		Sweep:     SweepConfig{Areas: []float64{0.0005, 0.001, 0.005, 0.01}},
	},

	// Room released from 2 bar with nothing injected.
	"blowdown": {
		Name:      "blowdown",
		Enclosure: EnclosureConfig{Volume: 50, InitialPressure: 2 * vent.DefaultAmbientPressure},
		Vent:      VentConfig{Area: 0.5, DischargeCoefficient: 0.7},
		Ambient: AmbientConfig{
			Pressure:    vent.DefaultAmbientPressure,
			Density:     vent.DefaultAmbientDensity,
			Temperature: 300,
			GasConstant: 8.314 / 29e-3,
		},
		Injection: InjectionConfig{Mass: 0, Duration: 0.0002},
		Dt:        1e-4,
		Duration:  2,
		Closure:   vent.TotalGas.String(),
		Sweep:     SweepConfig{Areas: []float64{0.05, 0.1, 0.5, 1}},
	},
}

func air() AmbientConfig {
	return AmbientConfig{
		Pressure:    vent.DefaultAmbientPressure,
		Density:     vent.DefaultAmbientDensity,
		Temperature: vent.DefaultTemperature,
		GasConstant: vent.DefaultGasConstant,
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	return s.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
