package vent

import (
	"fmt"
	"math"
	"strings"
)

// Closure selects what the tracked mass represents when pressure is derived
// from it.
type Closure int

const (
	// TotalGas tracks ambient air plus injected gas. The run starts at the
	// ambient-equilibrium mass P0·V/(R·T).
	TotalGas Closure = iota
	// InjectedOnly tracks the injected gas alone. The run starts empty, so
	// the enclosure reads below ambient until enough gas has been added.
	InjectedOnly
)

func (c Closure) String() string {
	switch c {
	case TotalGas:
		return "total"
	case InjectedOnly:
		return "injected"
	default:
		return fmt.Sprintf("closure(%d)", int(c))
	}
}

// ParseClosure accepts the names produced by String. An empty name is TotalGas.
func ParseClosure(name string) (Closure, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "total", "total_gas", "total-gas":
		return TotalGas, nil
	case "injected", "injected_only", "injected-only", "gas-only":
		return InjectedOnly, nil
	default:
		return TotalGas, fmt.Errorf("unknown closure: %s", name)
	}
}

func (c Closure) MarshalText() ([]byte, error) {
	if c != TotalGas && c != InjectedOnly {
		return nil, fmt.Errorf("unknown closure: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Closure) UnmarshalText(text []byte) error {
	parsed, err := ParseClosure(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Config holds the parameters of one run. All values are SI units.
type Config struct {
	Volume               float64 // m³
	VentArea             float64 // m²
	DischargeCoefficient float64
	AmbientPressure      float64 // Pa
	AmbientDensity       float64 // kg/m³, carried for reporting only
	InjectedMass         float64 // kg
	InjectionDuration    float64 // s
	Duration             float64 // s
	Dt                   float64 // s
	GasConstant          float64 // J/(kg·K)
	Temperature          float64 // K
	Closure              Closure
	// InitialPressure starts a TotalGas run away from ambient, e.g. for a
	// blow-down with no injection. Zero means ambient.
	InitialPressure float64 // Pa
}

// Air at 20 °C and sea-level pressure.
const (
	DefaultAmbientPressure = 101325.0
	DefaultAmbientDensity  = 1.225
	DefaultGasConstant     = 287.05
	DefaultTemperature     = 293.15
	DefaultDischargeCoeff  = 0.7
)

// DefaultConfig returns a 50 m³ room receiving 5 kg over 0.2 ms through a
// 0.01 m² vent, simulated for 10 ms at 1 µs steps.
func DefaultConfig() Config {
	return Config{
		Volume:               50.0,
		VentArea:             0.01,
		DischargeCoefficient: DefaultDischargeCoeff,
		AmbientPressure:      DefaultAmbientPressure,
		AmbientDensity:       DefaultAmbientDensity,
		InjectedMass:         5.0,
		InjectionDuration:    0.0002,
		Duration:             0.01,
		Dt:                   1e-6,
		GasConstant:          DefaultGasConstant,
		Temperature:          DefaultTemperature,
		Closure:              TotalGas,
	}
}

// Steps is the number of loop iterations a run will take.
func (c Config) Steps() int {
	if c.Dt <= 0 || c.Duration <= 0 {
		return 0
	}
	return int(math.Ceil(c.Duration/c.Dt - 1e-9))
}

// InitialMass is the mass inside the enclosure at t=0.
func (c Config) InitialMass() float64 {
	if c.Closure == InjectedOnly {
		return 0
	}
	p0 := c.AmbientPressure
	if c.InitialPressure > 0 {
		p0 = c.InitialPressure
	}
	return p0 * c.Volume / (c.GasConstant * c.Temperature)
}

// MassRate is the injection rate inside the injection window (kg/s).
func (c Config) MassRate() float64 {
	return c.InjectedMass / c.InjectionDuration
}

// Pressure applies the ideal-gas closure to a mass.
func (c Config) Pressure(mass float64) float64 {
	return mass * c.GasConstant * c.Temperature / c.Volume
}

// State is the enclosure at one recorded step.
type State struct {
	Time         float64
	Mass         float64 // kg at the start of the step
	Pressure     float64 // Pa, derived from Mass
	PeakPressure float64
	Outflow      float64 // kg/s
	Injected     float64 // cumulative kg
	Vented       float64 // cumulative kg
}

// Metric accumulates a scalar over the recorded states of a run.
type Metric interface {
	Name() string
	Observe(s State)
	Value() float64
	Reset()
}

// Observer is notified after every recorded step.
type Observer interface {
	OnStep(s State)
}

// Result is the output of a run. Times, Pressures and Masses are parallel.
type Result struct {
	Times        []float64
	Pressures    []float64
	Masses       []float64
	PeakPressure float64
	PeakTime     float64
	Steps        int
	ClampedSteps int
	InjectedMass float64
	VentedMass   float64
	Metrics      map[string]float64
}

// Overpressure is the peak pressure above ambient.
func (r *Result) Overpressure(ambient float64) float64 {
	return math.Max(r.PeakPressure-ambient, 0)
}

// FinalPressure is the last recorded pressure, or 0 for an empty result.
func (r *Result) FinalPressure() float64 {
	if len(r.Pressures) == 0 {
		return 0
	}
	return r.Pressures[len(r.Pressures)-1]
}
