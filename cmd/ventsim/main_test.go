package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ventsim/internal/storage"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(t.Context())
}

var fastFlags = []string{"--dt", "1e-5", "--injection", "1e-3", "--time", "3e-3", "--log-level", "error"}

func TestRunSavesAndIndexes(t *testing.T) {
	data := t.TempDir()
	args := append([]string{"run", "--data", data, "--name", "room"}, fastFlags...)
	require.NoError(t, execute(t, args...))

	runs, err := storage.New(data).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "room", runs[0].Name)
	assert.InDelta(t, 1e-5, runs[0].Params.Dt, 0)
	assert.Greater(t, runs[0].PeakPressure, runs[0].Params.AmbientPressure)

	cat, err := storage.OpenCatalog(filepath.Join(data, catalogFile))
	require.NoError(t, err)
	defer cat.Close()
	entries, err := cat.Recent(t.Context(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunNoSave(t *testing.T) {
	data := t.TempDir()
	args := append([]string{"run", "--data", data, "--no-save"}, fastFlags...)
	require.NoError(t, execute(t, args...))

	runs, err := storage.New(data).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSweepThenSizeFromCatalog(t *testing.T) {
	data := t.TempDir()
	args := append([]string{"sweep", "--data", data, "--name", "study", "--areas", "0.01,0.1,1"}, fastFlags...)
	require.NoError(t, execute(t, args...))

	runs, err := storage.New(data).List()
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	args = append([]string{"size", "--data", data, "--name", "study", "--from-catalog", "--max-overpressure", "1e6"}, fastFlags...)
	assert.NoError(t, execute(t, args...))
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room.yaml")
	body := "name: cfgroom\nenclosure:\n  volume: 20\ninjection:\n  mass: 1\n  duration: 1.0e-3\ndt: 1.0e-5\nduration: 3.0e-3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	data := t.TempDir()
	require.NoError(t, execute(t, "run", "--data", data, "--config", path, "--area", "0.2", "--log-level", "error"))

	runs, err := storage.New(data).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "cfgroom", runs[0].Name)
	assert.InDelta(t, 20, runs[0].Params.Volume, 0)
	assert.InDelta(t, 0.2, runs[0].Params.VentArea, 0)
}

func TestRejectsBadInput(t *testing.T) {
	data := t.TempDir()
	assert.Error(t, execute(t, "run", "--data", data, "--preset", "nope"))
	assert.Error(t, execute(t, "run", "--data", data, "--volume", "-1", "--log-level", "error"))
	assert.Error(t, execute(t, "run", "--data", data, "--log-format", "xml"))
	assert.Error(t, execute(t, "drag", "lead"))
	assert.ErrorContains(t, execute(t, "run", "--data", data, "--log-level", "loud"), "unknown log level")
	assert.ErrorContains(t, execute(t, "replay", "missing", "--data", data, "--theme", "neon"), "unknown theme")
}

func TestAnalyticCommands(t *testing.T) {
	assert.NoError(t, execute(t, "drag", "--log-level", "error"))
	assert.NoError(t, execute(t, "drag", "sand", "water", "--log-level", "error"))
	assert.NoError(t, execute(t, "mitigate", "--tnt", "10", "--log-level", "error"))
}

func TestAnalyzeStoredRun(t *testing.T) {
	data := t.TempDir()
	args := append([]string{"run", "--data", data, "--name", "pulse"}, fastFlags...)
	require.NoError(t, execute(t, args...))

	runs, err := storage.New(data).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.NoError(t, execute(t, "analyze", runs[0].ID, "--data", data, "--convergence", "2", "--log-level", "error"))
	assert.NoError(t, execute(t, "export-csv", runs[0].ID, "--data", data))
	assert.NoError(t, execute(t, "svg", runs[0].ID, "--data", data))
	assert.Error(t, execute(t, "plot", "missing", "--data", data))
}

func TestMonteCarloCommand(t *testing.T) {
	args := append([]string{"montecarlo", "--trials", "5", "--seed", "7"}, fastFlags...)
	assert.NoError(t, execute(t, args...))

	args = append([]string{"montecarlo", "--trials", "0"}, fastFlags...)
	assert.Error(t, execute(t, args...))
}
