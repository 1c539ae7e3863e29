package main

import (
	"fmt"
	"math"
	"os"
	"slices"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ventsim/internal/analysis"
	"github.com/san-kum/ventsim/internal/export"
	"github.com/san-kum/ventsim/internal/storage"
	"github.com/san-kum/ventsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if recent > 0 {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer cat.Close()

		entries, err := cat.Recent(cmd.Context(), recent)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tTIME\tAREA\tPEAK\tCLAMPED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.4g\t%.1f\t%d\n",
				e.ID, e.Name, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.VentArea, e.PeakPressure, e.ClampedSteps)
		}
		return w.Flush()
	}

	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	fmt.Fprintln(w, "ID\tNAME\tTIME\tVOLUME\tAREA\tMASS\tPEAK\tCLAMPED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3g\t%.4g\t%.3g\t%.1f\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Volume,
			run.Params.VentArea,
			run.Params.InjectedMass,
			run.PeakPressure,
			run.ClampedSteps,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(series.Pressures) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series.Pressures))

	_, pressures := export.Downsample(series.Times, series.Pressures, 80)
	fmt.Println(asciigraph.Plot(pressures,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("pressure (Pa), peak %.1f at %.4gs", meta.PeakPressure, meta.PeakTime)),
	))
	fmt.Println()

	_, masses := export.Downsample(series.Times, series.Masses, 80)
	fmt.Println(asciigraph.Plot(masses,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("mass (kg)"),
	))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, series.Times, series.Pressures)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	plots := make([]export.Series, 0, len(args))
	for _, id := range args {
		meta, series, err := loadRun(id)
		if err != nil {
			return err
		}
		xs, ys := export.Downsample(series.Times, series.Pressures, 2000)
		plots = append(plots, export.Series{
			Label: fmt.Sprintf("%s A=%gm²", meta.Name, meta.Params.VentArea),
			Xs:    xs,
			Ys:    ys,
		})
	}

	svg := export.SeriesToSVG(plots, 800, 400)
	if svg == "" {
		return fmt.Errorf("no data to plot")
	}
	_, err := fmt.Fprintln(os.Stdout, svg)
	return err
}

func replayRun(cmd *cobra.Command, args []string) error {
	if !slices.Contains(viz.ThemeNames(), theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	m := viz.NewReplay(meta.ID, series.Times, series.Pressures, meta.Params.AmbientPressure).WithTheme(theme)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	ambient := meta.Params.AmbientPressure
	report, err := analysis.AnalyzeTrace(series.Times, series.Pressures, ambient)
	if err != nil {
		return err
	}

	fmt.Printf("pulse analysis: %s\n\n", meta.ID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "peak overpressure\t%.1f Pa\n", report.PeakOverpressure)
	fmt.Fprintf(w, "peak time\t%s\n", seconds(report.PeakTime))
	fmt.Fprintf(w, "rise time (10-90%%)\t%s\n", seconds(report.RiseTime))
	fmt.Fprintf(w, "decay to 50%%\t%s\n", seconds(report.DecayHalfTime))
	fmt.Fprintf(w, "positive duration\t%s\n", seconds(report.PositiveDuration))
	fmt.Fprintf(w, "positive impulse\t%.4g Pa·s\n", report.PositiveImpulse)
	if err := w.Flush(); err != nil {
		return err
	}

	if convergenceLevels < 2 {
		return nil
	}

	conv, err := analysis.StepConvergence(cmd.Context(), meta.Params.Config(), convergenceLevels)
	if err != nil {
		return err
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tPEAK")
	for i := range conv.Dts {
		fmt.Fprintf(w, "%.3g\t%.2f\n", conv.Dts[i], conv.Peaks[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !math.IsNaN(conv.Order) {
		fmt.Printf("observed order: %.2f\n", conv.Order)
	}
	return nil
}

func seconds(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g s", v)
}
