package vent

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepPoint is one run of a vent-area sweep.
type SweepPoint struct {
	Area   float64
	Result *Result
}

// MetricFactory builds fresh metrics for one sweep run. Metrics carry
// per-run state, so they cannot be shared between goroutines.
type MetricFactory func(cfg Config) []Metric

// Sweeper runs independent simulations of the same base config over a set of
// vent areas.
type Sweeper struct {
	workers int
	metrics MetricFactory
	onDone  func(SweepPoint)
}

func NewSweeper(workers int) *Sweeper {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Sweeper{workers: workers}
}

// WithMetrics attaches fresh metrics to every run.
func (sw *Sweeper) WithMetrics(f MetricFactory) *Sweeper {
	sw.metrics = f
	return sw
}

// OnDone is called from the worker goroutine after each run completes.
func (sw *Sweeper) OnDone(fn func(SweepPoint)) *Sweeper {
	sw.onDone = fn
	return sw
}

// Run returns one point per area in input order. Every config is validated
// before any run starts; cancellation is checked between runs.
func (sw *Sweeper) Run(ctx context.Context, base Config, areas []float64) ([]SweepPoint, error) {
	if len(areas) == 0 {
		return nil, ErrNoAreas
	}

	cfgs := make([]Config, len(areas))
	for i, a := range areas {
		cfg := base
		cfg.VentArea = a
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("area %d: %w", i, err)
		}
		cfgs[i] = cfg
	}

	points := make([]SweepPoint, len(areas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sw.workers)

	for i := range cfgs {
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s := New()
			if sw.metrics != nil {
				for _, m := range sw.metrics(cfgs[idx]) {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(gctx, cfgs[idx])
			if err != nil {
				return fmt.Errorf("area %g: %w", cfgs[idx].VentArea, err)
			}

			points[idx] = SweepPoint{Area: cfgs[idx].VentArea, Result: res}
			if sw.onDone != nil {
				sw.onDone(points[idx])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Sweep runs base over areas with the given parallelism.
func Sweep(ctx context.Context, base Config, areas []float64, workers int) ([]SweepPoint, error) {
	return NewSweeper(workers).Run(ctx, base, areas)
}

// PeakIsMonotone reports whether peak pressure never increases as vent area
// grows. Points need not be sorted.
func PeakIsMonotone(points []SweepPoint) bool {
	for i := range points {
		for j := range points {
			if points[j].Area > points[i].Area &&
				points[j].Result.PeakPressure > points[i].Result.PeakPressure {
				return false
			}
		}
	}
	return true
}
