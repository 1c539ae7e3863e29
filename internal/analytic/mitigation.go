package analytic

import "math"

// Water properties and the TNT reference, in kJ, kg and °C.
const (
	WaterSpecificHeat   = 4.18
	WaterLatentHeat     = 2260.0
	WaterInitialTemp    = 25.0
	WaterBoilingTemp    = 100.0
	TNTEnergyPerKg      = 4184.0
	DefaultTNTMass      = 50.0
	DefaultMaxWaterMass = 100.0
)

// Mitigation estimates how much blast energy water absorbs by heating to
// the boiling point and vaporizing. Heat transfer is assumed complete.
type Mitigation struct {
	TNTMass      float64 // kg TNT equivalent
	SpecificHeat float64 // kJ/(kg·°C)
	LatentHeat   float64 // kJ/kg
	InitialTemp  float64 // °C
	BoilingTemp  float64 // °C
}

func NewMitigation(tntMass float64) Mitigation {
	return Mitigation{
		TNTMass:      tntMass,
		SpecificHeat: WaterSpecificHeat,
		LatentHeat:   WaterLatentHeat,
		InitialTemp:  WaterInitialTemp,
		BoilingTemp:  WaterBoilingTemp,
	}
}

// Explosive is the blast energy in kJ.
func (m Mitigation) Explosive() float64 {
	return m.TNTMass * TNTEnergyPerKg
}

// Absorbed is the energy in kJ taken up by water kg of water.
func (m Mitigation) Absorbed(water float64) float64 {
	return water*m.SpecificHeat*(m.BoilingTemp-m.InitialTemp) + water*m.LatentHeat
}

// Effective is the blast energy left after absorption, never negative.
func (m Mitigation) Effective(water float64) float64 {
	return math.Max(m.Explosive()-m.Absorbed(water), 0)
}

// Efficiency is the absorbed fraction, capped at 1.
func (m Mitigation) Efficiency(water float64) float64 {
	e := m.Explosive()
	if e <= 0 {
		return 1
	}
	return math.Min(m.Absorbed(water)/e, 1)
}

// WaterForFullMitigation is the smallest water mass with efficiency 1.
func (m Mitigation) WaterForFullMitigation() float64 {
	perKg := m.SpecificHeat*(m.BoilingTemp-m.InitialTemp) + m.LatentHeat
	return m.Explosive() / perKg
}

type MitigationPoint struct {
	Water      float64
	Effective  float64
	Efficiency float64
}

// Curve samples n water masses from 0 to maxWater inclusive.
func (m Mitigation) Curve(maxWater float64, n int) []MitigationPoint {
	if n < 2 {
		n = 2
	}
	pts := make([]MitigationPoint, n)
	for i := range pts {
		w := maxWater * float64(i) / float64(n-1)
		pts[i] = MitigationPoint{
			Water:      w,
			Effective:  m.Effective(w),
			Efficiency: m.Efficiency(w),
		}
	}
	return pts
}
