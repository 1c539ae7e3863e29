package vent

// Injector returns the mass to add during the step that starts at t.
type Injector interface {
	Increment(t, dt float64) float64
}

// LinearRamp adds Total evenly over [0, Duration] and nothing afterwards.
// The window is closed at both ends, so step quantization can add up to one
// extra increment.
type LinearRamp struct {
	Total    float64 // kg
	Duration float64 // s
}

func NewLinearRamp(cfg Config) *LinearRamp {
	return &LinearRamp{Total: cfg.InjectedMass, Duration: cfg.InjectionDuration}
}

func (r *LinearRamp) Increment(t, dt float64) float64 {
	if t > r.Duration || r.Duration <= 0 {
		return 0
	}
	return r.Total / r.Duration * dt
}
