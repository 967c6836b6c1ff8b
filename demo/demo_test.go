package demo_test

import (
	"testing"

	"github.com/plus3/bitshadow/demo"
	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem(t *testing.T) (*shadow.System, *shadow.ManualHost) {
	t.Helper()
	host := &shadow.ManualHost{}
	sys := shadow.NewSystem(
		shadow.WithHost(host),
		shadow.WithViewport(shadow.FixedViewport{W: 400, H: 400}),
	)
	demo.Register(sys.Factories())
	return sys, host
}

func TestRegister(t *testing.T) {
	sys, _ := newSystem(t)
	for _, name := range []string{"Particle", "Emitter", "Walker", "Oscillator"} {
		assert.True(t, sys.Factories().Has(name), name)
	}
}

func TestParticle(t *testing.T) {
	t.Run("falls and fades", func(t *testing.T) {
		sys, host := newSystem(t)
		require.NoError(t, sys.Init(nil))

		th, err := sys.Add("Particle", shadow.Options{
			Location: shadow.Vec(50, 50),
			Props:    map[string]any{"life": 10},
		})
		require.NoError(t, err)
		p := th.(*demo.Particle)

		_, err = host.FireN(5)
		require.NoError(t, err)
		assert.Greater(t, p.Location.Y, 50.0)
		assert.InDelta(t, 0.5, p.Opacity, 1e-9)
	})

	t.Run("retires at end of life", func(t *testing.T) {
		sys, host := newSystem(t)
		require.NoError(t, sys.Init(nil))

		_, err := sys.Add("Particle", shadow.Options{
			Location: shadow.Vec(50, 50),
			Props:    map[string]any{"life": 3},
		})
		require.NoError(t, err)

		_, err = host.FireN(3)
		require.NoError(t, err)
		assert.Empty(t, sys.ItemsByName("Particle"))
		assert.Equal(t, 1, sys.FirstWorld().Pool().Len())
	})

	t.Run("retires off world", func(t *testing.T) {
		sys, host := newSystem(t)
		require.NoError(t, sys.Init(nil))

		_, err := sys.Add("Particle", shadow.Options{
			Location: shadow.Vec(1, 1),
			Velocity: shadow.Vec(-5, 0),
		})
		require.NoError(t, err)

		_, err = host.Fire()
		require.NoError(t, err)
		assert.Empty(t, sys.ItemsByName("Particle"))
	})
}

func TestEmitter(t *testing.T) {
	sys, host := newSystem(t)
	require.NoError(t, sys.Init(nil))

	_, err := sys.Add("Emitter", shadow.Options{
		Location: shadow.Vec(50, 50),
		Props:    map[string]any{"rate": 3},
	})
	require.NoError(t, err)

	_, err = host.FireN(2)
	require.NoError(t, err)
	assert.Len(t, sys.ItemsByName("Particle"), 6)
}

func TestWalker(t *testing.T) {
	sys, host := newSystem(t)
	require.NoError(t, sys.Init(nil))

	th, err := sys.Add("Walker", shadow.Options{
		Location: shadow.Vec(0, 0),
		MaxSpeed: 1,
	})
	require.NoError(t, err)
	w := th.(*demo.Walker)

	sys.RecordTouch(10, 0)
	_, err = host.FireN(3)
	require.NoError(t, err)
	assert.InDelta(t, 3, w.Location.X, 1e-9)
	assert.InDelta(t, 0, w.Location.Y, 1e-9)
}

func TestOscillator(t *testing.T) {
	sys, host := newSystem(t)
	require.NoError(t, sys.Init(nil))

	th, err := sys.Add("Oscillator", shadow.Options{
		Location: shadow.Vec(50, 50),
		Hue:      359,
	})
	require.NoError(t, err)
	o := th.(*demo.Oscillator)
	assert.InDelta(t, 50, o.Origin.X, 1e-9)
	assert.InDelta(t, 0, o.Hue, 1e-9)

	_, err = host.FireN(10)
	require.NoError(t, err)
	assert.InDelta(t, 20, o.Location.Sub(o.Origin).Mag(), 1e-9)
	assert.InDelta(t, 10, o.Hue, 1e-9)
}

func TestSetup(t *testing.T) {
	sys, _ := newSystem(t)
	require.NoError(t, sys.Init(demo.Setup(2, 3)))

	assert.Len(t, sys.ItemsByName("Emitter"), 1)
	assert.Len(t, sys.ItemsByName("Walker"), 2)
	assert.Len(t, sys.ItemsByName("Oscillator"), 3)
}
