package metrics

import "github.com/san-kum/ventsim/internal/vent"

// TimeToPeak records when the highest pressure was observed.
type TimeToPeak struct {
	name    string
	peak    float64
	at      float64
	samples int
}

func NewTimeToPeak() *TimeToPeak {
	return &TimeToPeak{name: "time_to_peak"}
}

func (p *TimeToPeak) Name() string { return p.name }

func (p *TimeToPeak) Observe(s vent.State) {
	if p.samples == 0 || s.Pressure > p.peak {
		p.peak = s.Pressure
		p.at = s.Time
	}
	p.samples++
}

func (p *TimeToPeak) Value() float64 { return p.at }

func (p *TimeToPeak) Reset() {
	p.peak = 0
	p.at = 0
	p.samples = 0
}

// VentedMass is the total mass that left through the vent (kg).
type VentedMass struct {
	name   string
	vented float64
}

func NewVentedMass() *VentedMass {
	return &VentedMass{name: "vented_mass"}
}

func (v *VentedMass) Name() string { return v.name }

func (v *VentedMass) Observe(s vent.State) { v.vented = s.Vented }

func (v *VentedMass) Value() float64 { return v.vented }

func (v *VentedMass) Reset() { v.vented = 0 }

// MaxOutflow is the largest vent mass flow rate seen (kg/s).
type MaxOutflow struct {
	name string
	max  float64
}

func NewMaxOutflow() *MaxOutflow {
	return &MaxOutflow{name: "max_outflow"}
}

func (m *MaxOutflow) Name() string { return m.name }

func (m *MaxOutflow) Observe(s vent.State) {
	if s.Outflow > m.max {
		m.max = s.Outflow
	}
}

func (m *MaxOutflow) Value() float64 { return m.max }

func (m *MaxOutflow) Reset() { m.max = 0 }
