package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/bitshadow/script"
	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const walker = `
kind("Walker", {
  init = function(self)
    self.x = 1
    self.y = 2
    self.opacity = 0.5
    self.r = 300
  end,
  step = function(self, frame)
    self.x = self.x + 1
    self.hue = frame.clock
    if self.x > 3 then
      self.destroy = true
    end
  end,
})
`

func newScriptedSystem(t *testing.T, src string) (*shadow.System, *shadow.ManualHost) {
	t.Helper()
	engine := script.NewEngine(zap.NewNop())
	t.Cleanup(engine.Close)
	require.NoError(t, engine.LoadString(src))

	host := &shadow.ManualHost{}
	sys := shadow.NewSystem(shadow.WithHost(host), shadow.WithNoStartLoop())
	engine.Install(sys.Factories())
	return sys, host
}

func TestScripted(t *testing.T) {
	sys, host := newScriptedSystem(t, walker)
	require.NoError(t, sys.Init(nil))

	thing, err := sys.Add("Walker", shadow.Options{})
	require.NoError(t, err)
	it := thing.Base()

	t.Run("init writes back fields", func(t *testing.T) {
		require.NotNil(t, it.Location)
		assert.Equal(t, shadow.Vector{X: 1, Y: 2}, *it.Location)
		assert.Equal(t, 0.5, it.Opacity)
		assert.Equal(t, uint8(255), it.Color[0])
	})

	t.Run("step runs every frame", func(t *testing.T) {
		require.NoError(t, sys.Start())
		assert.Equal(t, 2.0, it.Location.X)
		assert.Equal(t, 0.0, it.Hue)

		_, err := host.Fire()
		require.NoError(t, err)
		assert.Equal(t, 3.0, it.Location.X)
		assert.Equal(t, 1.0, it.Hue)
	})

	t.Run("destroy flag retires the item", func(t *testing.T) {
		_, err := host.Fire()
		require.NoError(t, err)
		assert.Empty(t, sys.ItemsByName("Walker"))
		assert.True(t, sys.FirstWorld().Pool().Has("Walker"))

		again, err := sys.Add("Walker", shadow.Options{})
		require.NoError(t, err)
		assert.Same(t, thing, again)
		assert.Equal(t, 1.0, again.Base().Location.X)
	})
}

func TestEngineErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		engine := script.NewEngine(zap.NewNop())
		defer engine.Close()
		assert.Error(t, engine.LoadString("kind("))
	})

	t.Run("failing init", func(t *testing.T) {
		sys, _ := newScriptedSystem(t, `kind("Bad", { init = function(self) error("boom") end })`)
		require.NoError(t, sys.Init(nil))
		_, err := sys.Add("Bad", shadow.Options{})
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("failing step is logged", func(t *testing.T) {
		sys, _ := newScriptedSystem(t, `kind("Bad", { step = function(self) error("boom") end })`)
		require.NoError(t, sys.Init(nil))
		_, err := sys.Add("Bad", shadow.Options{Location: shadow.Vec(1, 1)})
		require.NoError(t, err)
		assert.NoError(t, sys.Start())
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walker.lua"), []byte(walker), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644))

	engine := script.NewEngine(zap.NewNop())
	defer engine.Close()

	require.NoError(t, engine.LoadDir(dir))
	require.NoError(t, engine.LoadDir(filepath.Join(dir, "missing")))
	assert.Equal(t, []string{"Walker"}, engine.Kinds())
}
