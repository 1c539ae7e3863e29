package optim

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/san-kum/ventsim/internal/vent"
)

var ErrNoCandidates = errors.New("optim: no candidate areas")

// Sizing is the outcome of a vent-sizing search.
type Sizing struct {
	Area   float64 // smallest admissible vent area, 0 when none qualifies
	Peak   float64 // peak pressure at Area (Pa)
	Found  bool
	Points []vent.SweepPoint // every candidate, sorted by area
}

// VentSizer grid-searches vent areas for the smallest one that keeps the
// peak pressure at or below a limit.
type VentSizer struct {
	Workers int
}

func NewVentSizer(workers int) *VentSizer {
	return &VentSizer{Workers: workers}
}

// Search evaluates every candidate area against base. limit is an absolute
// pressure in Pa.
func (v *VentSizer) Search(ctx context.Context, base vent.Config, candidates []float64, limit float64) (*Sizing, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	points, err := vent.Sweep(ctx, base, candidates, v.Workers)
	if err != nil {
		return nil, err
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Area < points[j].Area
	})

	out := &Sizing{Peak: math.Inf(1), Points: points}
	for _, p := range points {
		if p.Result.PeakPressure <= limit {
			out.Area = p.Area
			out.Peak = p.Result.PeakPressure
			out.Found = true
			return out, nil
		}
	}
	return out, nil
}
