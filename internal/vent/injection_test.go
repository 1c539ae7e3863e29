package vent

import (
	"math"
	"testing"
)

func TestLinearRampWindow(t *testing.T) {
	r := &LinearRamp{Total: 5, Duration: 0.0002}
	dt := 1e-6
	step := 5 / 0.0002 * dt

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"start", 0, step},
		{"inside", 0.0001, step},
		{"closing edge", 0.0002, step},
		{"after", 0.000201, 0},
		{"long after", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Increment(tt.t, dt); math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("Increment(%g) = %g, want %g", tt.t, got, tt.want)
			}
		})
	}
}

func TestLinearRampTotal(t *testing.T) {
	cfg := DefaultConfig()
	r := NewLinearRamp(cfg)

	total := 0.0
	for tm := 0.0; tm < cfg.Duration; tm += cfg.Dt {
		total += r.Increment(tm, cfg.Dt)
	}

	increment := cfg.MassRate() * cfg.Dt
	if total < cfg.InjectedMass-1e-9 || total > cfg.InjectedMass+increment+1e-9 {
		t.Errorf("expected total near %f, got %f", cfg.InjectedMass, total)
	}
}

type impulse struct {
	mass float64
	done bool
}

func (i *impulse) Increment(t, dt float64) float64 {
	if i.done {
		return 0
	}
	i.done = true
	return i.mass
}

func TestCustomInjector(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 1e-4
	cfg.VentArea = 0

	res, err := New(WithInjector(&impulse{mass: 2})).Run(t.Context(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(res.InjectedMass-2) > 1e-12 {
		t.Errorf("expected 2 kg injected, got %f", res.InjectedMass)
	}
	want := cfg.Pressure(cfg.InitialMass() + 2)
	if math.Abs(res.PeakPressure-want) > 1e-6 {
		t.Errorf("expected peak %f, got %f", want, res.PeakPressure)
	}
}
