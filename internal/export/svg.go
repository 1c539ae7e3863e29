package export

import (
	"fmt"
	"math"
	"strings"
)

// Series is one line of a plot.
type Series struct {
	Label string
	Xs    []float64
	Ys    []float64
}

var palette = []string{"#00ff00", "#ff6b6b", "#4dabf7", "#ffd43b", "#b197fc", "#63e6be"}

// SeriesToSVG plots every series on shared axes. Series with fewer than two
// points are skipped; an empty string means nothing was drawable.
func SeriesToSVG(series []Series, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	drawable := 0
	for _, s := range series {
		n := min(len(s.Xs), len(s.Ys))
		if n < 2 {
			continue
		}
		drawable++
		for i := 0; i < n; i++ {
			minX, maxX = math.Min(minX, s.Xs[i]), math.Max(maxX, s.Xs[i])
			minY, maxY = math.Min(minY, s.Ys[i]), math.Max(maxY, s.Ys[i])
		}
	}
	if drawable == 0 {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	idx := 0
	for _, s := range series {
		n := min(len(s.Xs), len(s.Ys))
		if n < 2 {
			continue
		}
		color := palette[idx%len(palette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i := 0; i < n; i++ {
			x := (s.Xs[i] - minX) / rangeX * float64(width)
			y := float64(height) - (s.Ys[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		if s.Label != "" {
			sb.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 20+16*idx, color, escape(s.Label)))
		}
		idx++
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// Downsample reduces a series to at most n points. Each bucket keeps its
// largest y so pressure peaks survive; the first and last points are kept.
func Downsample(xs, ys []float64, n int) ([]float64, []float64) {
	total := min(len(xs), len(ys))
	if n <= 0 || total <= n {
		return xs[:total], ys[:total]
	}
	if n < 3 {
		n = 3
	}

	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	outX = append(outX, xs[0])
	outY = append(outY, ys[0])

	inner := n - 2
	span := float64(total-2) / float64(inner)
	for b := 0; b < inner; b++ {
		lo := 1 + int(float64(b)*span)
		hi := 1 + int(float64(b+1)*span)
		if hi > total-1 {
			hi = total - 1
		}
		if lo >= hi {
			continue
		}
		best := lo
		for i := lo + 1; i < hi; i++ {
			if ys[i] > ys[best] {
				best = i
			}
		}
		outX = append(outX, xs[best])
		outY = append(outY, ys[best])
	}

	outX = append(outX, xs[total-1])
	outY = append(outY, ys[total-1])
	return outX, outY
}
