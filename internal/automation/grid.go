package automation

import (
	"errors"
	"math"
)

var ErrBadRange = errors.New("automation: invalid area range")

// AreaRange returns n evenly spaced areas from min to max inclusive.
func AreaRange(min, max float64, n int) ([]float64, error) {
	if n < 1 || min < 0 || max < min {
		return nil, ErrBadRange
	}
	if n == 1 {
		return []float64{min}, nil
	}

	step := (max - min) / float64(n-1)
	areas := make([]float64, n)
	for i := range areas {
		areas[i] = min + float64(i)*step
	}
	areas[n-1] = max
	return areas, nil
}

// LogAreas returns n geometrically spaced areas from min to max inclusive.
// Vent studies span decades, so this is usually the better grid.
func LogAreas(min, max float64, n int) ([]float64, error) {
	if n < 1 || min <= 0 || max < min {
		return nil, ErrBadRange
	}
	if n == 1 {
		return []float64{min}, nil
	}

	lo, hi := math.Log(min), math.Log(max)
	step := (hi - lo) / float64(n-1)
	areas := make([]float64, n)
	for i := range areas {
		areas[i] = math.Exp(lo + float64(i)*step)
	}
	areas[0], areas[n-1] = min, max
	return areas, nil
}
