package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/ventsim/internal/vent"
)

// MonteCarloConfig perturbs the uncertain inputs of a base run. Spreads are
// relative half-widths of a uniform distribution, e.g. 0.1 for ±10%.
type MonteCarloConfig struct {
	Base       vent.Config
	MassSpread float64
	CdSpread   float64
	NumTrials  int
	Seed       int64
	Limit      float64 // Pa; trials peaking above it count as exceedances
}

type MonteCarloResult struct {
	TrialID      int
	InjectedMass float64
	Cd           float64
	PeakPressure float64
	Exceeded     bool
}

// RunMonteCarlo executes trials sequentially so results are reproducible for
// a given seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *slog.Logger) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo: need at least one trial, got %d", cfg.NumTrials)
	}
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	sim := vent.New()

	for trial := 0; trial < cfg.NumTrials; trial++ {
		run := cfg.Base
		run.InjectedMass *= 1 + (rng.Float64()-0.5)*2*cfg.MassSpread
		run.DischargeCoefficient *= 1 + (rng.Float64()-0.5)*2*cfg.CdSpread
		run.InjectedMass = math.Max(run.InjectedMass, 0)
		run.DischargeCoefficient = clampCd(run.DischargeCoefficient)

		result, err := sim.Run(ctx, run)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID:      trial,
			InjectedMass: run.InjectedMass,
			Cd:           run.DischargeCoefficient,
			PeakPressure: result.PeakPressure,
			Exceeded:     cfg.Limit > 0 && result.PeakPressure > cfg.Limit,
		})

		if (trial+1)%10 == 0 {
			logger.Debug("monte carlo progress", "done", trial+1, "total", cfg.NumTrials)
		}
	}

	return results, nil
}

// clampCd keeps a sampled discharge coefficient inside (0, 1].
func clampCd(cd float64) float64 {
	return math.Min(math.Max(cd, math.SmallestNonzeroFloat64), 1)
}

// MonteCarloStats summarizes the peak distribution of a set of trials.
func MonteCarloStats(results []MonteCarloResult) (minPeak, meanPeak, maxPeak float64, exceeded int) {
	if len(results) == 0 {
		return 0, 0, 0, 0
	}
	minPeak, maxPeak = math.Inf(1), math.Inf(-1)
	for _, r := range results {
		minPeak = math.Min(minPeak, r.PeakPressure)
		maxPeak = math.Max(maxPeak, r.PeakPressure)
		meanPeak += r.PeakPressure
		if r.Exceeded {
			exceeded++
		}
	}
	meanPeak /= float64(len(results))
	return
}
