package export

import (
	"strings"
	"testing"
)

func TestSeriesToSVG(t *testing.T) {
	series := []Series{
		{Label: "A=0.01", Xs: []float64{0, 1, 2}, Ys: []float64{1, 3, 2}},
		{Label: "A<1>", Xs: []float64{0, 1, 2}, Ys: []float64{1, 2, 1.5}},
		{Label: "skipped", Xs: []float64{0}, Ys: []float64{1}},
	}

	svg := SeriesToSVG(series, 400, 200)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("malformed svg document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(svg, "A&lt;1&gt;") {
		t.Error("labels must be escaped")
	}
	if strings.Contains(svg, "skipped") {
		t.Error("single-point series should not be drawn")
	}
}

func TestSeriesToSVGEmpty(t *testing.T) {
	if svg := SeriesToSVG(nil, 100, 100); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestDownsample(t *testing.T) {
	n := 1000
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	ys[437] = 99

	dx, dy := Downsample(xs, ys, 50)
	if len(dx) > 50 || len(dx) != len(dy) {
		t.Fatalf("bad output length %d/%d", len(dx), len(dy))
	}
	if dx[0] != 0 || dx[len(dx)-1] != float64(n-1) {
		t.Error("endpoints must be kept")
	}

	found := false
	for i := range dy {
		if dy[i] == 99 && dx[i] == 437 {
			found = true
		}
	}
	if !found {
		t.Error("peak lost by downsampling")
	}
	for i := 1; i < len(dx); i++ {
		if dx[i] <= dx[i-1] {
			t.Fatal("x values must stay increasing")
		}
	}
}

func TestDownsampleShortSeries(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{5, 6, 7}
	dx, dy := Downsample(xs, ys, 10)
	if len(dx) != 3 || len(dy) != 3 {
		t.Errorf("short series should pass through, got %d", len(dx))
	}
}
