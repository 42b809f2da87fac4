package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsForRawLog(t *testing.T) {
	raw := filepath.Join("logs", "nightly.raw.yaml")
	paths, err := PathsForRawLog(raw)
	require.NoError(t, err)

	assert.Equal(t, ArtifactPaths{
		Raw:      raw,
		Elements: filepath.Join("logs", "nightly.elements.yaml"),
		Full:     filepath.Join("logs", "nightly.full.yaml"),
		Issues:   filepath.Join("logs", "nightly.issues.yaml"),
	}, paths)
}

func TestPathsForRawLog_OnlyFileNameIsRewritten(t *testing.T) {
	raw := filepath.Join("runs.raw.archive", "a.raw.b.raw.log")
	paths, err := PathsForRawLog(raw)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("runs.raw.archive", "a.raw.b.elements.log"), paths.Elements)
}

func TestPathsForRawLog_RejectsNonRawLogs(t *testing.T) {
	_, err := PathsForRawLog(filepath.Join("logs.raw.d", "nightly.yaml"))
	require.Error(t, err)
	assert.False(t, IsRawLog("nightly.elements.yaml"))
	assert.True(t, IsRawLog("nightly.raw.yaml"))
}

func TestStamped(t *testing.T) {
	assert.Equal(t, filepath.Join("logs", "run.full.20190312_162105.yaml"),
		Stamped(filepath.Join("logs", "run.full.yaml"), "20190312_162105"))
}
