// Package vent simulates pressure build-up and venting inside a fixed-volume
// enclosure after a rapid mass injection.
//
// The enclosure is a single well-mixed control volume with an isothermal
// ideal-gas closure (P = m·R·T/V). Mass enters through an [Injector] and
// leaves through a [DischargeModel]; the [Simulator] advances both with one
// explicit Euler step per iteration:
//
//   - [Config]: immutable run parameters in SI units
//   - [LinearRamp]: injects the total mass evenly over the injection window
//   - [Orifice]: incompressible orifice outflow, zero when not overpressured
//   - [Simulator]: the fixed-step loop, metrics and observers
//   - [Sweep]: independent runs over a set of vent areas in parallel
//
// # Example
//
//	cfg := vent.DefaultConfig()
//	cfg.VentArea = 0.05
//	result, err := vent.Run(cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.PeakPressure)
//
// # Stability
//
// There is no adaptive step control. Dt must be small against both the
// injection window and the venting time scale; when it is not, the mass is
// driven negative and clamped to zero. [Result.ClampedSteps] counts those
// steps so callers can flag an unsuitable step size.
//
// # Thread Safety
//
// A Simulator holds metric accumulators and is NOT safe for concurrent Run
// calls. Runs share no state, so use [Sweep] or one Simulator per goroutine.
package vent
