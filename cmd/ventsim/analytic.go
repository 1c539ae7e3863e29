package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ventsim/internal/analytic"
)

var (
	dragTime    float64
	dragSamples int
	fragArea    float64
	fragMass    float64
	fragSpeed   float64

	tntMass  float64
	maxWater float64
	samples  int
)

func newDragCmd() *cobra.Command {
	defaults := analytic.DefaultProjectile()
	cmd := &cobra.Command{
		Use:   "drag [material...]",
		Short: "fragment velocity under quadratic drag",
		RunE:  runDrag,
	}
	cmd.Flags().Float64Var(&dragTime, "time", 0.001, "time horizon (s)")
	cmd.Flags().IntVar(&dragSamples, "samples", 200, "samples per curve")
	cmd.Flags().Float64Var(&fragArea, "frag-area", defaults.Area, "projected area (m²)")
	cmd.Flags().Float64Var(&fragMass, "frag-mass", defaults.Mass, "fragment mass (kg)")
	cmd.Flags().Float64Var(&fragSpeed, "v0", defaults.V0, "initial velocity (m/s)")
	return cmd
}

func runDrag(cmd *cobra.Command, args []string) error {
	mats := analytic.Materials()
	if len(args) > 0 {
		mats = make([]analytic.Material, 0, len(args))
		for _, name := range args {
			m, ok := analytic.MaterialByName(name)
			if !ok {
				return fmt.Errorf("unknown material: %s", name)
			}
			mats = append(mats, m)
		}
	}

	p := analytic.Projectile{Area: fragArea, Mass: fragMass, V0: fragSpeed}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tK (1/m)\tV(END) m/s\tX(END) m\tV@0.1m m/s")
	series := make([][]float64, 0, len(mats))
	for _, m := range mats {
		fmt.Fprintf(w, "%s\t%.4g\t%.1f\t%.4g\t%.1f\n",
			m.Name, p.DragConstant(m), p.Velocity(m, dragTime), p.Distance(m, dragTime), p.VelocityAtDistance(m, 0.1))

		traj := p.Trajectory(m, dragTime, dragSamples)
		v := make([]float64, len(traj))
		for i, pt := range traj {
			v[i] = pt.Velocity
		}
		series = append(series, v)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow, asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("velocity (m/s) vs time"),
	))
	return nil
}

func newMitigateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mitigate",
		Short: "blast energy absorbed by a water charge",
		Args:  cobra.NoArgs,
		RunE:  runMitigate,
	}
	cmd.Flags().Float64Var(&tntMass, "tnt", analytic.DefaultTNTMass, "explosive mass, TNT equivalent (kg)")
	cmd.Flags().Float64Var(&maxWater, "max-water", analytic.DefaultMaxWaterMass, "largest water mass (kg)")
	cmd.Flags().IntVar(&samples, "samples", 100, "samples")
	return cmd
}

func runMitigate(cmd *cobra.Command, args []string) error {
	m := analytic.NewMitigation(tntMass)
	curve := m.Curve(maxWater, samples)

	eff := make([]float64, len(curve))
	for i, pt := range curve {
		eff[i] = pt.Efficiency * 100
	}

	fmt.Printf("explosive energy: %.0f kJ\n", m.Explosive())
	fmt.Printf("water for full absorption: %.1f kg\n\n", m.WaterForFullMitigation())
	fmt.Println(asciigraph.Plot(eff,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("mitigation efficiency (%%) vs water 0..%g kg", maxWater)),
	))
	last := curve[len(curve)-1]
	fmt.Printf("\nat %.0f kg: effective %.0f kJ, efficiency %.1f%%\n", last.Water, last.Effective, last.Efficiency*100)
	return nil
}
