package vent

import (
	"context"
	"math"
)

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 4096

type Option func(*Simulator)

// WithInjector replaces the linear ramp built from the run config.
func WithInjector(inj Injector) Option {
	return func(s *Simulator) { s.injector = inj }
}

// WithDischarge replaces the orifice built from the run config.
func WithDischarge(d DischargeModel) Option {
	return func(s *Simulator) { s.discharge = d }
}

type Simulator struct {
	injector  Injector
	discharge DischargeModel
	metrics   []Metric
	observers []Observer
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run simulates cfg with the default injection ramp and orifice.
func Run(cfg Config) (*Result, error) {
	return New().Run(context.Background(), cfg)
}

// Run validates cfg and steps the enclosure until cfg.Duration. On
// cancellation the partial result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Pressures: make([]float64, 0, steps+1),
		Masses:    make([]float64, 0, steps+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	sum, err := s.loop(ctx, cfg, func(st State) bool {
		result.Times = append(result.Times, st.Time)
		result.Pressures = append(result.Pressures, st.Pressure)
		result.Masses = append(result.Masses, st.Mass)
		return true
	})

	result.PeakPressure = sum.peak
	result.PeakTime = sum.peakTime
	result.Steps = sum.steps
	result.ClampedSteps = sum.clamped
	result.InjectedMass = sum.injected
	result.VentedMass = sum.vented

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, err
}

// RunWithCallback streams every recorded state to fn without retaining the
// series. Returning false from fn stops the run early without error.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(State) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err := s.loop(ctx, cfg, fn)
	return err
}

type summary struct {
	peak     float64
	peakTime float64
	steps    int
	clamped  int
	injected float64
	vented   float64
}

func (s *Simulator) loop(ctx context.Context, cfg Config, emit func(State) bool) (summary, error) {
	injector := s.injector
	if injector == nil {
		injector = NewLinearRamp(cfg)
	}
	discharge := s.discharge
	if discharge == nil {
		discharge = NewOrifice(cfg)
	}

	dt := cfg.Dt
	t := 0.0
	mass := cfg.InitialMass()
	sum := summary{peak: cfg.AmbientPressure}

	for t < cfg.Duration {
		if sum.steps%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			default:
			}
		}

		pressure := cfg.Pressure(mass)
		if pressure > sum.peak {
			sum.peak = pressure
			sum.peakTime = t
		}

		st := State{
			Time:     t,
			Mass:     mass,
			Pressure: pressure,
		}

		// Density uses the post-injection mass; the pressure driving the
		// outflow is the one computed at the start of the step.
		added := injector.Increment(t, dt)
		mass += added
		sum.injected += added

		outflow := discharge.Rate(mass, cfg.Volume, pressure, cfg.AmbientPressure)
		removed := outflow * dt
		if removed > mass {
			removed = mass
			sum.clamped++
		}
		mass = math.Max(mass-removed, 0)
		sum.vented += removed

		st.PeakPressure = sum.peak
		st.Outflow = outflow
		st.Injected = sum.injected
		st.Vented = sum.vented

		sum.steps++
		for _, m := range s.metrics {
			m.Observe(st)
		}
		for _, o := range s.observers {
			o.OnStep(st)
		}
		if !emit(st) {
			return sum, nil
		}

		t += dt
	}

	return sum, nil
}
