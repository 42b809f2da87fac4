package zenith

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/theGhostJW/zenith-with-typescript-sub000/exitcodes"
	"github.com/theGhostJW/zenith-with-typescript-sub000/logging"
)

const passingRun = `timestamp: "2019-03-12 16:21:05"
level: info
subType: RunStart
message: Run
additionalInfo: |
  name: Smoke
popControl: PushFolder
` + logging.DefaultDivider + `
timestamp: "2019-03-12 16:21:06"
level: info
subType: RunEnd
message: Run
popControl: PopFolder
`

func writePassingLog(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(logging.DefaultDivider+"\n"+passingRun), 0644))
	return path
}

// setupTest creates a summariser over the given config with a recording
// shutdown callback
func setupTest(t *testing.T, cfg *Config) (*summariser, chan error) {
	t.Helper()
	cfg.Log = log.NewLogger(log.DiscardHandler())
	if cfg.Divider == "" {
		cfg.Divider = logging.DefaultDivider
	}
	shutdown := make(chan error, 1)
	s, err := New(context.Background(), cfg, "test", func(err error) { shutdown <- err })
	require.NoError(t, err)
	return s, shutdown
}

func TestNew_RequiresInput(t *testing.T) {
	_, err := New(context.Background(), nil, "test", func(error) {})
	require.Error(t, err)

	_, err = New(context.Background(), &Config{Log: log.NewLogger(log.DiscardHandler()), RunOnce: true}, "test", func(error) {})
	require.Error(t, err)
}

func TestStart_RunOncePassing(t *testing.T) {
	raw := writePassingLog(t, t.TempDir(), "smoke.raw.yaml")
	s, shutdown := setupTest(t, &Config{RawLog: raw, RunOnce: true})

	require.NoError(t, s.Start(context.Background()))

	select {
	case err := <-shutdown:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown callback not called")
	}
	require.Len(t, s.Results(), 1)
	assert.False(t, s.Results()[0].Failed())
}

func TestStart_RunOnceFailingRun(t *testing.T) {
	raw := copyFixture(t, demoFixture, "demo.raw.yaml")
	s, shutdown := setupTest(t, &Config{RawLog: raw, RunOnce: true})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.True(t, IsTestFailureError(err))
	assert.Contains(t, err.Error(), "demo.raw.yaml has 2 failed tests and 1 out-of-test errors")

	select {
	case <-shutdown:
		t.Fatal("shutdown callback must not be called for a failing run")
	default:
	}
}

func TestStart_RunOnceCorruptLog(t *testing.T) {
	raw := filepath.Join(t.TempDir(), "broken.raw.yaml")
	require.NoError(t, os.WriteFile(raw, []byte("level: [\n"), 0644))
	s, _ := setupTest(t, &Config{RawLog: raw, RunOnce: true})

	err := s.Start(context.Background())
	require.Error(t, err)
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitcodes.RuntimeErr, exitErr.ExitCode())
}

func TestPendingLogs(t *testing.T) {
	dir := t.TempDir()
	done := writePassingLog(t, dir, "a.raw.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.elements.yaml"), nil, 0644))
	nested := filepath.Join(dir, "nightly")
	require.NoError(t, os.MkdirAll(nested, 0755))
	b := writePassingLog(t, nested, "b.raw.yaml")
	c := writePassingLog(t, dir, "c.raw.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.full.yaml"), nil, 0644))

	s, _ := setupTest(t, &Config{LogDir: dir, RunOnce: true})
	pending, err := s.pendingLogs()
	require.NoError(t, err)
	assert.Equal(t, []string{c, b}, pending)
	assert.NotContains(t, pending, done)

	explicit, _ := setupTest(t, &Config{RawLog: done, LogDir: dir, RunOnce: true})
	pending, err = explicit.pendingLogs()
	require.NoError(t, err)
	assert.Equal(t, []string{done, c, b}, pending, "an explicit raw log is always summarised first")
}

func TestPendingLogs_WatchModeSkipsSummarisedRawLog(t *testing.T) {
	dir := t.TempDir()
	raw := writePassingLog(t, dir, "live.raw.yaml")

	s, _ := setupTest(t, &Config{RawLog: raw, RunInterval: time.Hour})
	pending, err := s.pendingLogs()
	require.NoError(t, err)
	assert.Equal(t, []string{raw}, pending)

	_, err = s.scan()
	require.NoError(t, err)
	require.Len(t, s.Results(), 1)

	pending, err = s.pendingLogs()
	require.NoError(t, err)
	assert.Empty(t, pending, "a summarised raw log is not rescanned")
}

func TestStart_WatchMode(t *testing.T) {
	dir := t.TempDir()
	first := writePassingLog(t, dir, "first.raw.yaml")
	s, _ := setupTest(t, &Config{LogDir: dir, RunInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Start(ctx))
	assert.False(t, s.Stopped())
	firstPaths, err := logging.PathsForRawLog(first)
	require.NoError(t, err)
	assert.FileExists(t, firstPaths.Elements, "the first scan runs before Start returns")

	second := writePassingLog(t, dir, "second.raw.yaml")
	paths, err := logging.PathsForRawLog(second)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := os.Stat(paths.Elements)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "watcher should summarise the new log")

	require.NoError(t, s.Stop(ctx))
	assert.True(t, s.Stopped())
	require.NoError(t, s.WaitForShutdown(ctx))

	// stopping twice is a no-op
	require.NoError(t, s.Stop(ctx))
}

func TestStart_WatchModeContextCanceled(t *testing.T) {
	s, _ := setupTest(t, &Config{LogDir: t.TempDir(), RunInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, s.WaitForShutdown(waitCtx))
	assert.True(t, s.Stopped())
}
