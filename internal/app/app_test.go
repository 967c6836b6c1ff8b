package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/bitshadow/config"
	"github.com/plus3/bitshadow/internal/app"
	"github.com/plus3/bitshadow/recordio"
	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const crawler = `
kind("Crawler", {
  step = function(self, frame)
    self.x = self.x + 1
  end,
})
`

func newApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()
	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := app.Load("")
		require.NoError(t, err)
		defer a.Close()
		assert.Equal(t, config.Default(), a.Config)
		assert.Contains(t, a.Session, "session-")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := app.Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crawler.lua"), []byte(crawler), 0o644))

	cfg := config.Default()
	cfg.Script.Dir = dir
	cfg.Demo.Walkers = 1
	cfg.Demo.Oscillators = 2
	cfg.Spawn = []config.SpawnConfig{{Kind: "Crawler", Count: 2, X: 5, Y: 5}}
	a := newApp(t, cfg)

	host := &shadow.ManualHost{}
	sys := shadow.NewSystem(a.Options(host, nil)...)
	require.NoError(t, a.Prepare(sys))
	require.NoError(t, sys.Init(a.Setup()))

	assert.Len(t, sys.ItemsByName("Walker"), 1)
	assert.Len(t, sys.ItemsByName("Oscillator"), 2)
	assert.Len(t, sys.ItemsByName("Crawler"), 2)
	assert.True(t, host.Pending())
}

func TestFinishWritesRecording(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames.yaml")

	cfg := config.Default()
	cfg.Demo.Enabled = false
	cfg.System.TotalFrames = 4
	cfg.Record.Enabled = true
	cfg.Record.Output = out
	cfg.Record.Session = "test"
	cfg.Spawn = []config.SpawnConfig{{Kind: "Walker", Count: 1, X: 1, Y: 1}}
	a := newApp(t, cfg)

	host := &shadow.ManualHost{}
	sys := shadow.NewSystem(a.Options(host, nil)...)
	require.NoError(t, a.Prepare(sys))
	require.NoError(t, sys.Init(a.Setup()))

	for host.Pending() {
		_, err := host.Fire()
		require.NoError(t, err)
	}
	assert.Equal(t, shadow.StateStopped, sys.State())
	require.NoError(t, a.Finish(context.Background(), sys))

	f, err := recordio.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "test", f.Session)
	require.Len(t, f.Frames, 4)
	assert.Equal(t, int64(0), f.Frames[0].Frame)
	assert.Len(t, f.Frames[0].Items, 1)
}

func TestFinishWithoutRecords(t *testing.T) {
	cfg := config.Default()
	cfg.Record.Output = filepath.Join(t.TempDir(), "frames.yaml")
	a := newApp(t, cfg)

	sys := shadow.NewSystem(a.Options(&shadow.ManualHost{}, nil)...)
	require.NoError(t, a.Finish(context.Background(), sys))
	assert.NoFileExists(t, cfg.Record.Output)
}
