package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ventsim/internal/config"
	"github.com/san-kum/ventsim/internal/metrics"
	"github.com/san-kum/ventsim/internal/vent"
)

var (
	ErrEmptyPlan     = errors.New("automation: plan has no steps")
	ErrUnknownPreset = errors.New("automation: unknown preset")
)

// Plan is a scripted sequence of runs and sweeps.
type Plan struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Steps       []PlanStep `yaml:"steps"`
}

// PlanStep starts from a preset (reference when empty) and applies Overrides.
// When Sweep is set the step sweeps vent areas instead of running once.
type PlanStep struct {
	Name      string     `yaml:"name"`
	Preset    string     `yaml:"preset"`
	Overrides Overrides  `yaml:"overrides"`
	Sweep     *AreaSweep `yaml:"sweep"`
	SaveAs    string     `yaml:"save_as"`
}

type Overrides struct {
	Volume            *float64 `yaml:"volume"`
	VentArea          *float64 `yaml:"vent_area"`
	InjectedMass      *float64 `yaml:"injected_mass"`
	InjectionDuration *float64 `yaml:"injection_duration"`
	Duration          *float64 `yaml:"duration"`
	Dt                *float64 `yaml:"dt"`
	InitialPressure   *float64 `yaml:"initial_pressure"`
	Closure           string   `yaml:"closure"`
}

// AreaSweep describes an area grid. Log selects geometric spacing.
type AreaSweep struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Count   int     `yaml:"count"`
	Log     bool    `yaml:"log"`
	Workers int     `yaml:"workers"`
}

func (a *AreaSweep) Areas() ([]float64, error) {
	if a.Log {
		return LogAreas(a.Min, a.Max, a.Count)
	}
	return AreaRange(a.Min, a.Max, a.Count)
}

// StepResult is the output of one plan step. Result is set for single runs,
// Points for sweeps.
type StepResult struct {
	Name   string
	SaveAs string
	Config vent.Config
	Result *vent.Result
	Points []vent.SweepPoint
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	if len(plan.Steps) == 0 {
		return nil, ErrEmptyPlan
	}

	return &plan, nil
}

// StepConfig resolves the simulator parameters for a step.
func (s *PlanStep) StepConfig() (vent.Config, error) {
	preset := s.Preset
	if preset == "" {
		preset = "reference"
	}
	scenario := config.GetPreset(preset)
	if scenario == nil {
		return vent.Config{}, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}

	o := s.Overrides
	setIf(&scenario.Enclosure.Volume, o.Volume)
	setIf(&scenario.Vent.Area, o.VentArea)
	setIf(&scenario.Injection.Mass, o.InjectedMass)
	setIf(&scenario.Injection.Duration, o.InjectionDuration)
	setIf(&scenario.Duration, o.Duration)
	setIf(&scenario.Dt, o.Dt)
	setIf(&scenario.Enclosure.InitialPressure, o.InitialPressure)
	if o.Closure != "" {
		scenario.Closure = o.Closure
	}

	return scenario.SimConfig()
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// RunPlan executes steps in order and stops at the first failure, returning
// the results gathered so far.
func RunPlan(ctx context.Context, plan *Plan, logger *slog.Logger) ([]StepResult, error) {
	if len(plan.Steps) == 0 {
		return nil, ErrEmptyPlan
	}

	results := make([]StepResult, 0, len(plan.Steps))

	for i, step := range plan.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		log := logger.With("plan", plan.Name, "step", name)

		cfg, err := step.StepConfig()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		out := StepResult{Name: name, SaveAs: step.SaveAs, Config: cfg}

		if step.Sweep != nil {
			areas, err := step.Sweep.Areas()
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			log.Info("sweeping vent area", "points", len(areas), "min", areas[0], "max", areas[len(areas)-1])

			points, err := vent.NewSweeper(step.Sweep.Workers).
				WithMetrics(metrics.Default).
				Run(ctx, cfg, areas)
			if err != nil {
				return results, fmt.Errorf("step %d sweep: %w", i+1, err)
			}
			if !vent.PeakIsMonotone(points) {
				log.Warn("peak pressure is not monotone in vent area")
			}
			out.Points = points
		} else {
			log.Info("running", "vent_area", cfg.VentArea, "injected_mass", cfg.InjectedMass)

			sim := vent.New()
			for _, m := range metrics.Default(cfg) {
				sim.AddMetric(m)
			}
			result, err := sim.Run(ctx, cfg)
			if err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}
			if result.ClampedSteps > 0 {
				log.Warn("outflow clamped to available mass", "steps", result.ClampedSteps)
			}
			log.Debug("done", "peak_pressure", result.PeakPressure, "peak_time", result.PeakTime)
			out.Result = result
		}

		results = append(results, out)
	}

	return results, nil
}
