package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type ExportData struct {
	RunMetadata
	Times     []float64 `json:"times"`
	Pressures []float64 `json:"pressures"`
	Masses    []float64 `json:"masses"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, series *Series) error {
	data := ExportData{
		RunMetadata: *meta,
		Times:       series.Times,
		Pressures:   series.Pressures,
		Masses:      series.Masses,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes the time,pressure hand-off format.
func WriteCSV(w io.Writer, times, pressures []float64) error {
	if len(times) != len(pressures) {
		return fmt.Errorf("series length mismatch: %d times, %d pressures", len(times), len(pressures))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "pressure"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'g', -1, 64),
			strconv.FormatFloat(pressures[i], 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
