package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/ventsim/internal/vent"
)

// Convergence holds peak pressures at dt, dt/2, dt/4, ...
type Convergence struct {
	Dts   []float64
	Peaks []float64
	// Order is the observed order from the last three levels, NaN when the
	// differences vanish or there are fewer than three levels.
	Order float64
}

// StepConvergence reruns cfg with the timestep halved levels-1 times.
// Runs are sequential; halving dt doubles the cost of each level.
func StepConvergence(ctx context.Context, cfg vent.Config, levels int) (*Convergence, error) {
	if levels < 2 {
		return nil, fmt.Errorf("analysis: need at least two levels, got %d", levels)
	}

	conv := &Convergence{
		Dts:   make([]float64, 0, levels),
		Peaks: make([]float64, 0, levels),
		Order: math.NaN(),
	}

	sim := vent.New()
	run := cfg
	for i := 0; i < levels; i++ {
		res, err := sim.Run(ctx, run)
		if err != nil {
			return nil, fmt.Errorf("dt %g: %w", run.Dt, err)
		}
		conv.Dts = append(conv.Dts, run.Dt)
		conv.Peaks = append(conv.Peaks, res.PeakPressure)
		run.Dt /= 2
	}

	if levels >= 3 {
		p := conv.Peaks[levels-3:]
		d1 := math.Abs(p[0] - p[1])
		d2 := math.Abs(p[1] - p[2])
		if d1 > 0 && d2 > 0 {
			conv.Order = math.Log2(d1 / d2)
		}
	}

	return conv, nil
}
