package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ventsim/internal/vent"
)

const (
	DefaultVolume            = 50.0
	DefaultVentArea          = 0.01
	DefaultInjectedMass      = 5.0
	DefaultInjectionDuration = 0.0002
	DefaultDuration          = 0.01
	DefaultDt                = 1e-6
)

// Scenario is the on-disk description of a run. Field names follow the
// physical quantity, units are SI.
type Scenario struct {
	Name      string          `yaml:"name" toml:"name"`
	Enclosure EnclosureConfig `yaml:"enclosure" toml:"enclosure"`
	Vent      VentConfig      `yaml:"vent" toml:"vent"`
	Ambient   AmbientConfig   `yaml:"ambient" toml:"ambient"`
	Injection InjectionConfig `yaml:"injection" toml:"injection"`
	Dt        float64         `yaml:"dt" toml:"dt"`
	Duration  float64         `yaml:"duration" toml:"duration"`
	Closure   string          `yaml:"closure" toml:"closure"`
	Sweep     SweepConfig     `yaml:"sweep" toml:"sweep"`
}

type EnclosureConfig struct {
	Volume float64 `yaml:"volume" toml:"volume"`
	// InitialPressure is the starting pressure in Pa; 0 means ambient.
	InitialPressure float64 `yaml:"initial_pressure,omitempty" toml:"initial_pressure,omitempty"`
}

type VentConfig struct {
	Area                 float64 `yaml:"area" toml:"area"`
	DischargeCoefficient float64 `yaml:"discharge_coefficient" toml:"discharge_coefficient"`
}

type AmbientConfig struct {
	Pressure    float64 `yaml:"pressure" toml:"pressure"`
	Density     float64 `yaml:"density" toml:"density"`
	Temperature float64 `yaml:"temperature" toml:"temperature"`
	GasConstant float64 `yaml:"gas_constant" toml:"gas_constant"`
}

type InjectionConfig struct {
	Mass     float64 `yaml:"mass" toml:"mass"`
	Duration float64 `yaml:"duration" toml:"duration"`
}

type SweepConfig struct {
	Areas   []float64 `yaml:"areas" toml:"areas"`
	Workers int       `yaml:"workers" toml:"workers"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name: "reference",
		Enclosure: EnclosureConfig{
			Volume: DefaultVolume,
		},
		Vent: VentConfig{
			Area:                 DefaultVentArea,
			DischargeCoefficient: vent.DefaultDischargeCoeff,
		},
		Ambient: AmbientConfig{
			Pressure:    vent.DefaultAmbientPressure,
			Density:     vent.DefaultAmbientDensity,
			Temperature: vent.DefaultTemperature,
			GasConstant: vent.DefaultGasConstant,
		},
		Injection: InjectionConfig{
			Mass:     DefaultInjectedMass,
			Duration: DefaultInjectionDuration,
		},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Closure:  vent.TotalGas.String(),
		Sweep: SweepConfig{
			Areas: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0},
		},
	}
}

// Load reads a scenario from YAML, or TOML when the extension is .toml.
// Fields missing from the file keep their defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScenario()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return s, nil
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(s)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// SimConfig converts the scenario into simulator parameters.
func (s *Scenario) SimConfig() (vent.Config, error) {
	closure, err := vent.ParseClosure(s.Closure)
	if err != nil {
		return vent.Config{}, err
	}
	return vent.Config{
		Volume:               s.Enclosure.Volume,
		VentArea:             s.Vent.Area,
		DischargeCoefficient: s.Vent.DischargeCoefficient,
		AmbientPressure:      s.Ambient.Pressure,
		AmbientDensity:       s.Ambient.Density,
		InjectedMass:         s.Injection.Mass,
		InjectionDuration:    s.Injection.Duration,
		Duration:             s.Duration,
		Dt:                   s.Dt,
		GasConstant:          s.Ambient.GasConstant,
		Temperature:          s.Ambient.Temperature,
		Closure:              closure,
		InitialPressure:      s.Enclosure.InitialPressure,
	}, nil
}

// Clone returns a deep copy, so presets can be modified safely.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Sweep.Areas = append([]float64(nil), s.Sweep.Areas...)
	return &c
}
