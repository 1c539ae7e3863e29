package analytic

import (
	"math"
	"strings"
)

// Material is a medium a fragment travels through.
type Material struct {
	Name    string
	Density float64 // kg/m³
	Cd      float64
}

var (
	Air   = Material{Name: "Air", Density: 1.225, Cd: 0.3}
	Foam  = Material{Name: "Foam", Density: 60, Cd: 0.9}
	Sand  = Material{Name: "Sand", Density: 1770, Cd: 2.62}
	Water = Material{Name: "Water", Density: 1000, Cd: 0.88}
)

func Materials() []Material {
	return []Material{Air, Foam, Sand, Water}
}

// MaterialByName matches case-insensitively.
func MaterialByName(name string) (Material, bool) {
	for _, m := range Materials() {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Material{}, false
}

// Projectile is a fragment under quadratic drag with no other forces.
type Projectile struct {
	Area float64 // projected area, m²
	Mass float64 // kg
	V0   float64 // m/s
}

// DefaultProjectile is a 5 g fragment at 1700 m/s.
func DefaultProjectile() Projectile {
	return Projectile{Area: 0.0001344, Mass: 0.005, V0: 1700}
}

// DragConstant is k = ρ·Cd·A/(2m), so dv/dt = -k·v².
func (p Projectile) DragConstant(m Material) float64 {
	return m.Density * m.Cd * p.Area / (2 * p.Mass)
}

func (p Projectile) Velocity(m Material, t float64) float64 {
	k := p.DragConstant(m)
	return p.V0 / (1 + p.V0*k*t)
}

func (p Projectile) Distance(m Material, t float64) float64 {
	k := p.DragConstant(m)
	if k == 0 {
		return p.V0 * t
	}
	return math.Log1p(p.V0*k*t) / k
}

func (p Projectile) VelocityAtDistance(m Material, x float64) float64 {
	return p.V0 * math.Exp(-p.DragConstant(m)*x)
}

// TrajectoryPoint is one sample of a drag trajectory.
type TrajectoryPoint struct {
	Time     float64
	Distance float64
	Velocity float64
}

// Trajectory samples n evenly spaced times from 0 to tEnd inclusive.
func (p Projectile) Trajectory(m Material, tEnd float64, n int) []TrajectoryPoint {
	if n < 2 {
		n = 2
	}
	pts := make([]TrajectoryPoint, n)
	for i := range pts {
		t := tEnd * float64(i) / float64(n-1)
		pts[i] = TrajectoryPoint{
			Time:     t,
			Distance: p.Distance(m, t),
			Velocity: p.Velocity(m, t),
		}
	}
	return pts
}
