// Package analysis characterizes pressure histories after a run.
//
//   - [AnalyzeTrace]: rise time, decay half-time and positive-phase impulse
//   - [StepConvergence]: peak pressure at successively halved timesteps and
//     the observed order of accuracy
//
// # Timestep Check
//
// Forward Euler is first order, so halving dt should roughly halve the
// change in peak pressure:
//
//	conv, err := analysis.StepConvergence(ctx, cfg, 3)
//	if conv.Order < 0.8 {
//	    // dt is too coarse for this scenario
//	}
package analysis
