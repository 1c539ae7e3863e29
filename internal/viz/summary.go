package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/ventsim/internal/vent"
)

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

// Summary renders the headline numbers of a run.
func Summary(name string, cfg vent.Config, r *vent.Result) string {
	var b strings.Builder

	b.WriteString(Title.Render(strings.ToUpper(name)) + "\n\n")
	b.WriteString(row("volume", fmt.Sprintf("%.3g m³", cfg.Volume)))
	b.WriteString(row("vent area", fmt.Sprintf("%.4g m²", cfg.VentArea)))
	b.WriteString(row("injected", fmt.Sprintf("%.4g kg over %.3g s", cfg.InjectedMass, cfg.InjectionDuration)))
	b.WriteString(row("closure", cfg.Closure.String()))
	b.WriteString(Separator(40) + "\n")
	b.WriteString(row("peak pressure", fmt.Sprintf("%.1f Pa", r.PeakPressure)))
	b.WriteString(row("overpressure", fmt.Sprintf("%.1f Pa (%.3f bar)", r.Overpressure(cfg.AmbientPressure), r.Overpressure(cfg.AmbientPressure)/1e5)))
	b.WriteString(row("peak time", fmt.Sprintf("%.4g s", r.PeakTime)))
	b.WriteString(row("final pressure", fmt.Sprintf("%.1f Pa", r.FinalPressure())))
	b.WriteString(row("vented mass", fmt.Sprintf("%.4g kg", r.VentedMass)))
	b.WriteString(row("steps", fmt.Sprintf("%d", r.Steps)))

	if len(r.Metrics) > 0 {
		keys := make([]string, 0, len(r.Metrics))
		for k := range r.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(Separator(40) + "\n")
		for _, k := range keys {
			b.WriteString(row(k, fmt.Sprintf("%.6g", r.Metrics[k])))
		}
	}

	if r.ClampedSteps > 0 {
		b.WriteString("\n" + Warning.Render(fmt.Sprintf("outflow clamped on %d steps; reduce dt", r.ClampedSteps)))
	}

	return Panel.Render(b.String())
}

// SweepTable lists peak pressure per vent area, smallest area first.
func SweepTable(points []vent.SweepPoint, ambient float64) string {
	sorted := make([]vent.SweepPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Area < sorted[j].Area })

	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%-12s %-14s %-12s %-12s %s", "area m²", "peak Pa", "over bar", "peak s", "clamped")) + "\n")

	peaks := make([]float64, len(sorted))
	for i, p := range sorted {
		peaks[i] = p.Result.PeakPressure
		b.WriteString(fmt.Sprintf("%-12.4g %-14.1f %-12.4f %-12.4g %d\n",
			p.Area, p.Result.PeakPressure, p.Result.Overpressure(ambient)/1e5, p.Result.PeakTime, p.Result.ClampedSteps))
	}

	if len(peaks) > 1 {
		b.WriteString("\n" + MetricLabel.Render("peak trend") + Sparkline(peaks) + "\n")
	}
	if !vent.PeakIsMonotone(sorted) {
		b.WriteString(Warning.Render("peak pressure not monotone in vent area") + "\n")
	}
	return b.String()
}
