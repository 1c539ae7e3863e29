package vent

import "math"

// DischargeModel returns the vent outflow rate in kg/s for the current
// enclosure state.
type DischargeModel interface {
	Rate(mass, volume, pressure, ambient float64) float64
}

// Orifice is the incompressible orifice law
//
//	ṁ = Cd·A·√(2·ρ·(P - P0)),  ρ = m/V
//
// It is only accurate at low pressure ratios; choked flow is not modeled.
// There is no back-flow: the rate is zero whenever P <= P0.
type Orifice struct {
	Area float64 // m²
	Cd   float64
}

func NewOrifice(cfg Config) *Orifice {
	return &Orifice{Area: cfg.VentArea, Cd: cfg.DischargeCoefficient}
}

func (o *Orifice) Rate(mass, volume, pressure, ambient float64) float64 {
	if pressure <= ambient || o.Area <= 0 || mass <= 0 {
		return 0
	}
	rho := mass / volume
	return o.Cd * o.Area * math.Sqrt(2*rho*(pressure-ambient))
}
