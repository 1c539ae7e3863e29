package metrics

import (
	"math"

	"github.com/san-kum/ventsim/internal/vent"
)

// Impulse is the running integral of pressure over time (Pa·s), i.e. the
// impulse per unit wall area. Fixed steps make it a plain sum times dt.
type Impulse struct {
	name string
	dt   float64
	sum  float64
}

func NewImpulse(dt float64) *Impulse {
	return &Impulse{name: "impulse", dt: dt}
}

func (i *Impulse) Name() string { return i.name }

func (i *Impulse) Observe(s vent.State) {
	i.sum += s.Pressure
}

func (i *Impulse) Value() float64 {
	return i.sum * i.dt
}

func (i *Impulse) Reset() {
	i.sum = 0
}

// OverpressureImpulse integrates only the pressure above ambient, which is
// what loads the walls.
type OverpressureImpulse struct {
	name    string
	ambient float64
	dt      float64
	sum     float64
}

func NewOverpressureImpulse(ambient, dt float64) *OverpressureImpulse {
	return &OverpressureImpulse{
		name:    "overpressure_impulse",
		ambient: ambient,
		dt:      dt,
	}
}

func (o *OverpressureImpulse) Name() string { return o.name }

func (o *OverpressureImpulse) Observe(s vent.State) {
	o.sum += math.Max(s.Pressure-o.ambient, 0)
}

func (o *OverpressureImpulse) Value() float64 {
	return o.sum * o.dt
}

func (o *OverpressureImpulse) Reset() {
	o.sum = 0
}
