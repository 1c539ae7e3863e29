package main

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/san-kum/ventsim/internal/automation"
	"github.com/san-kum/ventsim/internal/metrics"
	"github.com/san-kum/ventsim/internal/optim"
	"github.com/san-kum/ventsim/internal/storage"
	"github.com/san-kum/ventsim/internal/vent"
	"github.com/san-kum/ventsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	scenario, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := scenario.SimConfig()
	if err != nil {
		return err
	}

	sim := vent.New()
	for _, m := range metrics.Default(cfg) {
		sim.AddMetric(m)
	}

	logger.Debug("starting run", "name", scenario.Name, "steps", cfg.Steps(), "closure", cfg.Closure)
	result, err := sim.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if result.ClampedSteps > 0 {
		logger.Warn("outflow clamped to available mass", "steps", result.ClampedSteps)
	}

	fmt.Println(viz.Summary(scenario.Name, cfg, result))

	if noSave {
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		logger.Warn("catalog unavailable", "error", err)
	} else {
		defer cat.Close()
	}

	meta, err := saveRun(ctx, st, cat, scenario.Name, cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", meta.ID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	scenario, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := scenario.SimConfig()
	if err != nil {
		return err
	}

	total := len(scenario.Sweep.Areas)
	var done atomic.Int32

	points, err := vent.NewSweeper(scenario.Sweep.Workers).
		WithMetrics(metrics.Default).
		OnDone(func(p vent.SweepPoint) {
			n := done.Add(1)
			logger.Debug("sweep point done", "area", p.Area, "peak", p.Result.PeakPressure, "done", n, "total", total)
		}).
		Run(ctx, cfg, scenario.Sweep.Areas)
	if err != nil {
		return err
	}

	fmt.Println(viz.SweepTable(points, cfg.AmbientPressure))

	if noSave {
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	for _, p := range points {
		pcfg := cfg
		pcfg.VentArea = p.Area
		meta, err := saveRun(ctx, st, cat, scenario.Name, pcfg, p.Result)
		if err != nil {
			return err
		}
		logger.Info("saved", "run", meta.ID, "area", p.Area)
	}
	return nil
}

func sizeVent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	scenario, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := scenario.SimConfig()
	if err != nil {
		return err
	}
	limit := cfg.AmbientPressure + maxOverpressure

	if fromCatalog {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer cat.Close()

		entry, err := cat.SmallestVentUnder(ctx, scenario.Name, limit)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("no stored %s run stays under %.0f Pa\n", scenario.Name, limit)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("smallest stored vent: %.4g m² (peak %.1f Pa, run %s)\n", entry.VentArea, entry.PeakPressure, entry.ID)
		return nil
	}

	sizing, err := optim.NewVentSizer(scenario.Sweep.Workers).Search(ctx, cfg, scenario.Sweep.Areas, limit)
	if err != nil {
		return err
	}

	fmt.Println(viz.SweepTable(sizing.Points, cfg.AmbientPressure))
	if !sizing.Found {
		fmt.Printf("no candidate keeps overpressure under %.0f Pa; try larger areas\n", maxOverpressure)
		return nil
	}
	fmt.Printf("smallest vent: %.4g m² (peak %.1f Pa, overpressure %.1f Pa)\n",
		sizing.Area, sizing.Peak, sizing.Peak-cfg.AmbientPressure)
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	scenario, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	cfg, err := scenario.SimConfig()
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:       cfg,
		MassSpread: massSpread,
		CdSpread:   cdSpread,
		NumTrials:  trials,
		Seed:       seed,
		Limit:      cfg.AmbientPressure + maxOverpressure,
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, logger)
	if err != nil {
		return err
	}

	minPeak, meanPeak, maxPeak, exceeded := automation.MonteCarloStats(results)
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s: %d trials", scenario.Name, len(results))))
	fmt.Printf("peak min   %.1f Pa\n", minPeak)
	fmt.Printf("peak mean  %.1f Pa\n", meanPeak)
	fmt.Printf("peak max   %.1f Pa\n", maxPeak)
	fmt.Printf("exceeded   %d of %d (limit %.0f Pa)\n", exceeded, len(results), mc.Limit)
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	plan, err := automation.LoadPlan(args[0])
	if err != nil {
		return err
	}

	results, runErr := automation.RunPlan(ctx, plan, logger)

	st, err := openStore()
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	for _, r := range results {
		switch {
		case r.Result != nil:
			fmt.Println(viz.Summary(r.Name, r.Config, r.Result))
			if r.SaveAs != "" {
				meta, err := saveRun(ctx, st, cat, r.SaveAs, r.Config, r.Result)
				if err != nil {
					return err
				}
				fmt.Printf("saved: %s\n", meta.ID)
			}
		case r.Points != nil:
			fmt.Printf("%s\n%s\n", viz.Title.Render(r.Name), viz.SweepTable(r.Points, r.Config.AmbientPressure))
			if r.SaveAs != "" {
				for _, p := range r.Points {
					pcfg := r.Config
					pcfg.VentArea = p.Area
					if _, err := saveRun(ctx, st, cat, r.SaveAs, pcfg, p.Result); err != nil {
						return err
					}
				}
			}
		}
	}

	return runErr
}
