package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ventsim/internal/export"
)

const (
	chartWidth  = 70
	chartHeight = 14
	frameRate   = 30
	maxSpeed    = 64
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay plays back a recorded pressure history. A full run takes about
// five seconds at speed 1.
type Replay struct {
	name      string
	times     []float64
	pressures []float64
	ambient   float64
	playHead  int
	stride    int
	speed     int
	running   bool
	themeIdx  int
}

func NewReplay(name string, times, pressures []float64, ambient float64) Replay {
	n := min(len(times), len(pressures))
	stride := max(n/(5*frameRate), 1)
	return Replay{
		name:      name,
		times:     times[:n],
		pressures: pressures[:n],
		ambient:   ambient,
		stride:    stride,
		speed:     1,
		running:   true,
	}
}

func (m Replay) Init() tea.Cmd {
	return tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.running = true
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(Themes)
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-":
			m.speed = max(m.speed/2, 1)
		case "[":
			m.running = false
			m.scrub(-1)
		case "]":
			m.running = false
			m.scrub(1)
		}
		return m, nil
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance moves the play head one frame and stops at the end.
func (m *Replay) advance() {
	if len(m.times) == 0 {
		m.running = false
		return
	}
	m.playHead += m.stride * m.speed
	if m.playHead >= len(m.times)-1 {
		m.playHead = len(m.times) - 1
		m.running = false
	}
}

func (m *Replay) scrub(dir int) {
	m.playHead += dir * m.stride * 10
	m.playHead = max(0, min(m.playHead, len(m.times)-1))
}

// WithTheme starts the replay in the named theme. Unknown names fall back
// like GetTheme.
func (m Replay) WithTheme(name string) Replay {
	theme := GetTheme(name)
	for i, t := range Themes {
		if t.Name == theme.Name {
			m.themeIdx = i
		}
	}
	return m
}

// Theme is the theme currently in use.
func (m Replay) Theme() Theme { return Themes[m.themeIdx] }

// Position returns the current play head index.
func (m Replay) Position() int { return m.playHead }

func (m Replay) View() string {
	theme := m.Theme()
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	label := lipgloss.NewStyle().Foreground(theme.Muted).Width(16)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n")

	if len(m.times) == 0 {
		s.WriteString("no samples\n")
		return s.String()
	}

	status := StatusRunning.Render(fmt.Sprintf("PLAYING x%d", m.speed))
	if !m.running {
		status = StatusPaused.Render("PAUSED")
		if m.playHead == len(m.times)-1 {
			status = StatusPaused.Render("END")
		}
	}
	s.WriteString(status + "\n\n")

	end := m.playHead + 1
	if end >= 2 {
		_, ys := export.Downsample(m.times[:end], m.pressures[:end], chartWidth)
		chart := asciigraph.Plot(ys,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("pressure (Pa)"),
		)
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(chart) + "\n\n")
	}

	peak := m.ambient
	for _, p := range m.pressures[:end] {
		peak = max(peak, p)
	}
	p := m.pressures[m.playHead]

	s.WriteString(label.Render("time") + value.Render(fmt.Sprintf("%.6f s", m.times[m.playHead])) + "\n")
	s.WriteString(label.Render("pressure") + value.Render(fmt.Sprintf("%.1f Pa", p)) + "\n")
	s.WriteString(label.Render("overpressure") + value.Render(fmt.Sprintf("%.1f Pa", p-m.ambient)) + "\n")
	s.WriteString(label.Render("peak so far") + value.Render(fmt.Sprintf("%.1f Pa", peak)) + "\n")
	s.WriteString(label.Render("progress") + ProgressBar(float64(m.playHead)/float64(max(len(m.times)-1, 1)), 30) + "\n")

	s.WriteString("\n" + KeyHint.Render("SP:Pause R:Restart T:Theme +/-:Speed [ ]:Scrub Q:Quit"))
	return Panel.BorderForeground(theme.Muted).Render(s.String())
}
