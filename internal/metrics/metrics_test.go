package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ventsim/internal/vent"
)

func TestImpulseConstantPressure(t *testing.T) {
	m := NewImpulse(1e-3)

	for i := 0; i < 1000; i++ {
		m.Observe(vent.State{Time: float64(i) * 1e-3, Pressure: 101325})
	}

	if math.Abs(m.Value()-101325) > 1e-6 {
		t.Errorf("expected impulse 101325, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero impulse after reset")
	}
}

func TestOverpressureImpulseIgnoresSuction(t *testing.T) {
	m := NewOverpressureImpulse(100000, 0.5)

	m.Observe(vent.State{Pressure: 90000})
	m.Observe(vent.State{Pressure: 102000})

	if math.Abs(m.Value()-1000) > 1e-9 {
		t.Errorf("expected 1000, got %f", m.Value())
	}
}

func TestTimeToPeak(t *testing.T) {
	m := NewTimeToPeak()

	for i, p := range []float64{1, 3, 7, 7, 2} {
		m.Observe(vent.State{Time: float64(i), Pressure: p})
	}

	if m.Value() != 2 {
		t.Errorf("expected first peak at t=2, got %f", m.Value())
	}
}

func TestDefaultMetricsOnRun(t *testing.T) {
	cfg := vent.DefaultConfig()
	cfg.Duration = 0.002

	s := vent.New()
	for _, m := range Default(cfg) {
		s.AddMetric(m)
	}

	res, err := s.Run(t.Context(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"impulse", "overpressure_impulse", "time_to_peak", "vented_mass", "max_outflow"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}

	if math.Abs(res.Metrics["vented_mass"]-res.VentedMass) > 1e-12 {
		t.Errorf("vented_mass %f != result %f", res.Metrics["vented_mass"], res.VentedMass)
	}
	if math.Abs(res.Metrics["time_to_peak"]-res.PeakTime) > 1e-12 {
		t.Errorf("time_to_peak %f != result %f", res.Metrics["time_to_peak"], res.PeakTime)
	}
	if res.Metrics["overpressure_impulse"] <= 0 {
		t.Error("expected positive overpressure impulse")
	}
}
