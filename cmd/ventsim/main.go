package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/ventsim/internal/config"
	"github.com/san-kum/ventsim/internal/logging"
	"github.com/san-kum/ventsim/internal/storage"
	"github.com/san-kum/ventsim/internal/vent"
	"github.com/san-kum/ventsim/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	logger    *slog.Logger

	configFile string
	preset     string
	runName    string
	noSave     bool

	volume      float64
	ventArea    float64
	cd          float64
	mass        float64
	injection   float64
	dt          float64
	duration    float64
	temperature float64
	closure     string
	initialP    float64

	areas   []float64
	workers int

	maxOverpressure   float64
	fromCatalog       bool
	recent            int
	convergenceLevels int

	theme string

	trials     int
	seed       int64
	massSpread float64
	cdSpread   float64
)

const catalogFile = "catalog.db"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ventsim",
		Short:        "vented enclosure pressure simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.SetupLogger(logLevel, logFormat)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ventsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level ("+strings.Join(logging.Levels, ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one enclosure",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "simulate a set of vent areas in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&areas, "areas", nil, "vent areas in m² (default from scenario)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "find the smallest vent area under an overpressure limit",
		Args:  cobra.NoArgs,
		RunE:  sizeVent,
	}
	addScenarioFlags(sizeCmd)
	sizeCmd.Flags().Float64SliceVar(&areas, "areas", nil, "candidate vent areas in m² (default from scenario)")
	sizeCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	sizeCmd.Flags().Float64Var(&maxOverpressure, "max-overpressure", 10000, "allowed overpressure in Pa")
	sizeCmd.Flags().BoolVar(&fromCatalog, "from-catalog", false, "answer from stored runs instead of simulating")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "peak pressure spread under uncertain mass and discharge coefficient",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(mcCmd)
	mcCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	mcCmd.Flags().Int64Var(&seed, "seed", 1, "random seed (0 = time based)")
	mcCmd.Flags().Float64Var(&massSpread, "mass-spread", 0.1, "relative half-width of the injected mass")
	mcCmd.Flags().Float64Var(&cdSpread, "cd-spread", 0.1, "relative half-width of the discharge coefficient")
	mcCmd.Flags().Float64Var(&maxOverpressure, "max-overpressure", 10000, "overpressure counted as an exceedance (Pa)")

	planCmd := &cobra.Command{
		Use:   "plan [file]",
		Short: "run a scripted plan of runs and sweeps",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	listCmd.Flags().IntVar(&recent, "recent", 0, "show only the n most recent runs from the catalog")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot pressure history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write time,pressure CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and series as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "pulse shape and timestep convergence of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&convergenceLevels, "convergence", 0, "rerun at this many halved timesteps (0 = off)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id...]",
		Short: "write an SVG plot of one or more runs to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE:  exportSVG,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "play back a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s V=%gm³ A=%gm² m=%gkg over %gs (%s)\n",
					name, p.Enclosure.Volume, p.Vent.Area, p.Injection.Mass, p.Injection.Duration, p.Closure)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, sizeCmd, mcCmd, planCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, analyzeCmd, svgCmd, replayCmd, presetsCmd,
		newDragCmd(), newMitigateCmd())

	return rootCmd
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	cmd.Flags().StringVar(&runName, "name", "", "run name (default scenario name)")
	cmd.Flags().Float64Var(&volume, "volume", config.DefaultVolume, "enclosure volume (m³)")
	cmd.Flags().Float64Var(&ventArea, "area", config.DefaultVentArea, "vent area (m²)")
	cmd.Flags().Float64Var(&cd, "cd", vent.DefaultDischargeCoeff, "discharge coefficient")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultInjectedMass, "injected mass (kg)")
	cmd.Flags().Float64Var(&injection, "injection", config.DefaultInjectionDuration, "injection duration (s)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration (s)")
	cmd.Flags().Float64Var(&temperature, "temperature", vent.DefaultTemperature, "gas temperature (K)")
	cmd.Flags().StringVar(&closure, "closure", vent.TotalGas.String(), "mass closure (total, injected)")
	cmd.Flags().Float64Var(&initialP, "initial-pressure", 0, "starting pressure in Pa (0 = ambient)")
}

// resolveScenario layers preset, config file and explicitly set flags, in
// that order.
func resolveScenario(cmd *cobra.Command) (*config.Scenario, error) {
	s := config.DefaultScenario()

	if preset != "" {
		s = config.GetPreset(preset)
		if s == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		s = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("volume") {
		s.Enclosure.Volume = volume
	}
	if flags.Changed("area") {
		s.Vent.Area = ventArea
	}
	if flags.Changed("cd") {
		s.Vent.DischargeCoefficient = cd
	}
	if flags.Changed("mass") {
		s.Injection.Mass = mass
	}
	if flags.Changed("injection") {
		s.Injection.Duration = injection
	}
	if flags.Changed("dt") {
		s.Dt = dt
	}
	if flags.Changed("time") {
		s.Duration = duration
	}
	if flags.Changed("temperature") {
		s.Ambient.Temperature = temperature
	}
	if flags.Changed("closure") {
		s.Closure = closure
	}
	if flags.Changed("initial-pressure") {
		s.Enclosure.InitialPressure = initialP
	}
	if flags.Changed("areas") {
		s.Sweep.Areas = areas
	}
	if flags.Changed("workers") {
		s.Sweep.Workers = workers
	}
	if runName != "" {
		s.Name = runName
	}

	return s, nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func openCatalog() (*storage.Catalog, error) {
	return storage.OpenCatalog(filepath.Join(dataDir, catalogFile))
}

// saveRun stores a run and indexes it. Catalog failures are logged, not
// returned.
func saveRun(ctx context.Context, st *storage.Store, cat *storage.Catalog, name string, cfg vent.Config, result *vent.Result) (*storage.RunMetadata, error) {
	meta, err := st.Save(name, cfg, result)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		if err := cat.Record(ctx, meta); err != nil {
			logger.Warn("catalog update failed", "run", meta.ID, "error", err)
		}
	}
	return meta, nil
}
