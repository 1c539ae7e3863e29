package viz

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ventsim/internal/vent"
)

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7})
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Error("empty input should render nothing")
	}
	if flat := Sparkline([]float64{3, 3, 3}); utf8.RuneCountInString(flat) != 3 {
		t.Errorf("flat series should render one char per value, got %q", flat)
	}
}

func TestSummary(t *testing.T) {
	cfg := vent.DefaultConfig()
	r := &vent.Result{
		Pressures:    []float64{101325, 109000},
		PeakPressure: 109000,
		PeakTime:     2e-4,
		Steps:        2,
		ClampedSteps: 3,
		Metrics:      map[string]float64{"impulse": 1.5},
	}

	out := Summary("reference", cfg, r)
	for _, want := range []string{"REFERENCE", "109000.0 Pa", "impulse", "clamped on 3 steps"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestSweepTable(t *testing.T) {
	points := []vent.SweepPoint{
		{Area: 0.1, Result: &vent.Result{PeakPressure: 105000}},
		{Area: 0.01, Result: &vent.Result{PeakPressure: 110000}},
	}
	out := SweepTable(points, 101325)

	if strings.Index(out, "0.01 ") > strings.Index(out, "0.1 ") {
		t.Error("rows should be sorted by area")
	}
	if strings.Contains(out, "not monotone") {
		t.Error("monotone sweep flagged")
	}

	points[0].Result.PeakPressure = 120000
	if !strings.Contains(SweepTable(points, 101325), "not monotone") {
		t.Error("expected monotonicity warning")
	}
}

func TestReplayPlayback(t *testing.T) {
	n := 1000
	times := make([]float64, n)
	pressures := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * 1e-6
		pressures[i] = 101325 + float64(i)
	}

	var m tea.Model = NewReplay("run", times, pressures, 101325)
	for i := 0; i < 1000; i++ {
		m, _ = m.Update(TickMsg{})
	}
	r := m.(Replay)
	if r.Position() != n-1 {
		t.Errorf("expected play head at end, got %d", r.Position())
	}
	if !strings.Contains(r.View(), "END") {
		t.Error("expected END status")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.(Replay).Position() != 0 {
		t.Error("restart should rewind")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	if m.(Replay).Position() == 0 {
		t.Error("scrub forward should move the play head")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("quit should return a command")
	}
}

func TestReplayEmpty(t *testing.T) {
	m := NewReplay("empty", nil, nil, 101325)
	next, _ := m.Update(TickMsg{})
	if !strings.Contains(next.View(), "no samples") {
		t.Error("expected empty view")
	}
}

func TestReplayTheme(t *testing.T) {
	m := NewReplay("run", []float64{0, 1e-6}, []float64{101325, 101400}, 101325)
	if m.Theme().Name != ThemeCyberpunk.Name {
		t.Errorf("expected default theme %s, got %s", ThemeCyberpunk.Name, m.Theme().Name)
	}

	m = m.WithTheme("minimal")
	if m.Theme().Name != "minimal" {
		t.Errorf("expected minimal, got %s", m.Theme().Name)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if next.(Replay).Theme().Name != ThemeNames()[0] {
		t.Errorf("theme should wrap to %s, got %s", ThemeNames()[0], next.(Replay).Theme().Name)
	}

	if m.WithTheme("nope").Theme().Name != ThemeCyberpunk.Name {
		t.Error("unknown theme should fall back to cyberpunk")
	}
}
