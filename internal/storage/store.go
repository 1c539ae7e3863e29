package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ventsim/internal/vent"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "pressure.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunParams mirrors vent.Config with stable JSON names.
type RunParams struct {
	Volume               float64      `json:"volume"`
	VentArea             float64      `json:"vent_area"`
	DischargeCoefficient float64      `json:"discharge_coefficient"`
	AmbientPressure      float64      `json:"ambient_pressure"`
	AmbientDensity       float64      `json:"ambient_density"`
	InjectedMass         float64      `json:"injected_mass"`
	InjectionDuration    float64      `json:"injection_duration"`
	Duration             float64      `json:"duration"`
	Dt                   float64      `json:"dt"`
	GasConstant          float64      `json:"gas_constant"`
	Temperature          float64      `json:"temperature"`
	Closure              vent.Closure `json:"closure"`
	InitialPressure      float64      `json:"initial_pressure,omitempty"`
}

func ParamsFrom(cfg vent.Config) RunParams {
	return RunParams{
		Volume:               cfg.Volume,
		VentArea:             cfg.VentArea,
		DischargeCoefficient: cfg.DischargeCoefficient,
		AmbientPressure:      cfg.AmbientPressure,
		AmbientDensity:       cfg.AmbientDensity,
		InjectedMass:         cfg.InjectedMass,
		InjectionDuration:    cfg.InjectionDuration,
		Duration:             cfg.Duration,
		Dt:                   cfg.Dt,
		GasConstant:          cfg.GasConstant,
		Temperature:          cfg.Temperature,
		Closure:              cfg.Closure,
		InitialPressure:      cfg.InitialPressure,
	}
}

func (p RunParams) Config() vent.Config {
	return vent.Config{
		Volume:               p.Volume,
		VentArea:             p.VentArea,
		DischargeCoefficient: p.DischargeCoefficient,
		AmbientPressure:      p.AmbientPressure,
		AmbientDensity:       p.AmbientDensity,
		InjectedMass:         p.InjectedMass,
		InjectionDuration:    p.InjectionDuration,
		Duration:             p.Duration,
		Dt:                   p.Dt,
		GasConstant:          p.GasConstant,
		Temperature:          p.Temperature,
		Closure:              p.Closure,
		InitialPressure:      p.InitialPressure,
	}
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Params       RunParams          `json:"params"`
	PeakPressure float64            `json:"peak_pressure"`
	PeakTime     float64            `json:"peak_time"`
	Steps        int                `json:"steps"`
	ClampedSteps int                `json:"clamped_steps"`
	InjectedMass float64            `json:"injected_mass"`
	VentedMass   float64            `json:"vented_mass"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Series is a stored pressure history.
type Series struct {
	Times     []float64
	Pressures []float64
	Masses    []float64
}

// Save writes metadata.json and pressure.csv into a fresh run directory and
// returns its metadata.
func (s *Store) Save(name string, cfg vent.Config, result *vent.Result) (*RunMetadata, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(name, now)
	if err != nil {
		return nil, err
	}

	meta := &RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    now,
		Params:       ParamsFrom(cfg),
		PeakPressure: result.PeakPressure,
		PeakTime:     result.PeakTime,
		Steps:        result.Steps,
		ClampedSteps: result.ClampedSteps,
		InjectedMass: result.InjectedMass,
		VentedMass:   result.VentedMass,
		Metrics:      result.Metrics,
	}

	if err := writeRun(runDir, meta, result); err != nil {
		_ = os.RemoveAll(runDir)
		return nil, err
	}

	return meta, nil
}

func writeRun(runDir string, meta *RunMetadata, result *vent.Result) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return err
	}

	if err := writeSeries(csvFile, result); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeSeries(w io.Writer, result *vent.Result) error {
	if len(result.Pressures) != len(result.Times) || len(result.Masses) != len(result.Times) {
		return fmt.Errorf("series length mismatch: %d times, %d pressures, %d masses",
			len(result.Times), len(result.Pressures), len(result.Masses))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "pressure", "mass"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', -1, 64),
			strconv.FormatFloat(result.Pressures[i], 'g', -1, 64),
			strconv.FormatFloat(result.Masses[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, now.UnixNano())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	n := len(records) - 1
	series.Times = make([]float64, 0, n)
	series.Pressures = make([]float64, 0, n)
	series.Masses = make([]float64, 0, n)

	for i, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("%s line %d: expected 3 columns, got %d", seriesFile, i+2, len(record))
		}
		vals := make([]float64, 3)
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", seriesFile, i+2, err)
			}
			vals[j] = v
		}
		series.Times = append(series.Times, vals[0])
		series.Pressures = append(series.Pressures, vals[1])
		series.Masses = append(series.Masses, vals[2])
	}

	return series, nil
}
