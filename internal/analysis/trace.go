package analysis

import (
	"errors"
	"math"
)

var ErrShortTrace = errors.New("analysis: need at least two samples")

// TraceReport summarizes the overpressure pulse of one run. Times are in
// seconds; NaN means the pulse never crossed the relevant threshold.
type TraceReport struct {
	PeakOverpressure float64 // Pa
	PeakTime         float64
	RiseTime         float64 // 10% to 90% of peak overpressure
	DecayHalfTime    float64 // from peak until overpressure falls to 50%
	PositiveDuration float64 // total time spent above ambient
	PositiveImpulse  float64 // ∫ max(P-P0, 0) dt, Pa·s
}

// AnalyzeTrace assumes times are increasing and evenly spaced.
func AnalyzeTrace(times, pressures []float64, ambient float64) (TraceReport, error) {
	n := min(len(times), len(pressures))
	if n < 2 {
		return TraceReport{}, ErrShortTrace
	}

	nan := math.NaN()
	r := TraceReport{RiseTime: nan, DecayHalfTime: nan}

	peakIdx := 0
	for i := 0; i < n; i++ {
		over := pressures[i] - ambient
		if over > r.PeakOverpressure {
			r.PeakOverpressure = over
			peakIdx = i
		}
	}
	r.PeakTime = times[peakIdx]

	for i := 1; i < n; i++ {
		dt := times[i] - times[i-1]
		a := math.Max(pressures[i-1]-ambient, 0)
		b := math.Max(pressures[i]-ambient, 0)
		r.PositiveImpulse += 0.5 * (a + b) * dt
		if a > 0 {
			r.PositiveDuration += dt
		}
	}

	if r.PeakOverpressure <= 0 {
		return r, nil
	}

	lo, hi, half := 0.1*r.PeakOverpressure, 0.9*r.PeakOverpressure, 0.5*r.PeakOverpressure
	t10, t90 := nan, nan
	for i := 0; i <= peakIdx; i++ {
		over := pressures[i] - ambient
		if math.IsNaN(t10) && over >= lo {
			t10 = times[i]
		}
		if over >= hi {
			t90 = times[i]
			break
		}
	}
	r.RiseTime = t90 - t10

	for i := peakIdx; i < n; i++ {
		if pressures[i]-ambient <= half {
			r.DecayHalfTime = times[i] - r.PeakTime
			break
		}
	}

	return r, nil
}
