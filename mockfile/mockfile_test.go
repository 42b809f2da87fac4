package mockfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

func iteration(id string, balance int) types.IterationInfo {
	return types.IterationInfo{
		TestName: "Demo_Case",
		ID:       id,
		Item:     map[string]any{"id": 1, "when": "a user logs in"},
		APState:  map[string]any{"balance": balance},
	}
}

func TestWriter_WritesMock(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(log.NewLogger(log.DiscardHandler()), dir, nil)
	runConfig := map[string]any{"name": "nightly", "environment": "TST"}

	require.NoError(t, w.Write(iteration("1", 100), runConfig))

	m, err := Load(filepath.Join(dir, "TST", "Demo_Case_1.yaml"))
	require.NoError(t, err)
	assert.Equal(t, runConfig, m.RunConfig)
	assert.Equal(t, map[string]any{"balance": 100}, m.APState)
	assert.Equal(t, "a user logs in", m.Item["when"])
}

func TestWriter_CollisionOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same.yaml")
	fixed := func(string, string, map[string]any) (string, error) { return path, nil }
	w := NewWriter(log.NewLogger(log.DiscardHandler()), "", fixed)
	runConfig := map[string]any{"name": "nightly"}

	require.NoError(t, w.Write(iteration("1", 100), runConfig))
	require.NoError(t, w.Write(iteration("2", 250), runConfig))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"balance": 250}, m.APState)
}

func TestWriter_MissingRunConfig(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(log.NewLogger(log.DiscardHandler()), dir, nil)

	err := w.Write(iteration("1", 100), nil)
	assert.ErrorIs(t, err, ErrMissingRunConfig)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriter_NameFuncError(t *testing.T) {
	boom := errors.New("boom")
	w := NewWriter(log.NewLogger(log.DiscardHandler()), "", func(string, string, map[string]any) (string, error) {
		return "", boom
	})
	err := w.Write(iteration("1", 100), map[string]any{"name": "nightly"})
	assert.ErrorIs(t, err, boom)
}

func TestDefaultNameFunc(t *testing.T) {
	name := DefaultNameFunc("mocks")

	got, err := name("7", "Demo Case/2", map[string]any{"name": "nightly"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("mocks", "Demo_Case_2_7.yaml"), got)

	_, err = name("7", "", nil)
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("runConfig: [oops"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}
