package shadow_test

import (
	"testing"

	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraw(t *testing.T) {
	t.Run("rgba fragment", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		surface := &shadow.MemorySurface{}
		sys.AddWorld(surface, shadow.WorldOptions{})
		require.NoError(t, sys.Init(nil))

		_, err := sys.Add("Item", shadow.Options{
			Location: shadow.Vec(2, 3),
			Blur:     1,
			Color:    &shadow.RGB{10, 20, 30},
			Opacity:  shadow.Float(0.5),
		})
		require.NoError(t, err)

		require.NoError(t, sys.Start())
		assert.Equal(t, "8px 12px 1px 4px rgba(10,20,30, 0.5)", surface.BoxShadow)
		assert.Equal(t, "0%", surface.BorderRadius)
	})

	t.Run("rgb without alpha support", func(t *testing.T) {
		sys, _ := newTestSystem(
			shadow.WithNoStartLoop(),
			shadow.WithFeatures(shadow.Features{BoxShadow: true}),
		)
		surface := &shadow.MemorySurface{}
		sys.AddWorld(surface, shadow.WorldOptions{BorderRadius: 50})
		require.NoError(t, sys.Init(nil))

		sys.Add("Item", shadow.Options{Location: shadow.Vec(2, 3), Color: &shadow.RGB{10, 20, 30}})
		require.NoError(t, sys.Start())
		assert.Equal(t, "8px 12px 0px 4px rgb(10,20,30)", surface.BoxShadow)
		assert.Equal(t, "50%", surface.BorderRadius)
	})

	t.Run("hsla fragment", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		surface := &shadow.MemorySurface{}
		sys.AddWorld(surface, shadow.WorldOptions{ColorMode: shadow.ColorModeHSLA, Resolution: 2})
		require.NoError(t, sys.Init(nil))

		sys.Add("Item", shadow.Options{
			Location:   shadow.Vec(1.5, 2),
			Scale:      shadow.Float(1.5),
			Hue:        120,
			Saturation: 0.5,
			Lightness:  0.25,
		})
		require.NoError(t, sys.Start())
		assert.Equal(t, "3px 4px 0px 3px hsla(120,50%,25%, 1)", surface.BoxShadow)
	})

	t.Run("hsl without alpha support", func(t *testing.T) {
		features := shadow.Features{BoxShadow: true}
		sys, _ := newTestSystem(shadow.WithNoStartLoop(), shadow.WithFeatures(features))
		surface := &shadow.MemorySurface{}
		sys.AddWorld(surface, shadow.WorldOptions{ColorMode: shadow.ColorModeHSLA})
		require.NoError(t, sys.Init(nil))

		thing, err := sys.Add("Item", shadow.Options{
			Location:   shadow.Vec(2, 3),
			Hue:        120,
			Saturation: 0.5,
			Lightness:  0.25,
		})
		require.NoError(t, err)

		assert.Equal(t, "8px 12px 0px 4px hsl(120,50%,25%),", string(shadow.AppendHSLA(nil, thing.Base(), features)))
		require.NoError(t, sys.Start())
		assert.Equal(t, "8px 12px 0px 4px hsl(120,50%,25%)", surface.BoxShadow)
	})

	t.Run("fragments are joined in reverse registry order", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		surface := &shadow.MemorySurface{}
		sys.AddWorld(surface, shadow.WorldOptions{Resolution: 1})
		require.NoError(t, sys.Init(nil))

		sys.Add("Item", shadow.Options{Location: shadow.Vec(1, 1)})
		sys.Add("Item", shadow.Options{Location: shadow.Vec(2, 2)})
		// not drawn: no location, zero opacity
		sys.Add("Item", shadow.Options{})
		sys.Add("Item", shadow.Options{Location: shadow.Vec(3, 3), Opacity: shadow.Float(0)})

		require.NoError(t, sys.Start())
		assert.Equal(t, "2px 2px 0px 1px rgba(0,0,0, 1),1px 1px 0px 1px rgba(0,0,0, 1)", surface.BoxShadow)
	})

	t.Run("empty world commits an empty value", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		surface := &shadow.MemorySurface{BoxShadow: "stale"}
		sys.AddWorld(surface, shadow.WorldOptions{})
		require.NoError(t, sys.Init(nil))
		require.NoError(t, sys.Start())
		assert.Equal(t, "", surface.BoxShadow)
		assert.Equal(t, 1, surface.Commits)
	})

	t.Run("unsupported color mode fails the frame", func(t *testing.T) {
		sys, host := newTestSystem(shadow.WithNoStartLoop())
		surface := &shadow.MemorySurface{BoxShadow: "previous"}
		sys.AddWorld(surface, shadow.WorldOptions{ColorMode: "cmyk"})
		require.NoError(t, sys.Init(nil))
		sys.Add("Item", shadow.Options{Location: shadow.Vec(1, 1)})

		err := sys.Start()
		assert.ErrorIs(t, err, shadow.ErrUnsupportedColorMode)
		assert.Equal(t, shadow.StateStopped, sys.State())
		assert.False(t, host.Pending())
		assert.Equal(t, "previous", surface.BoxShadow)
		assert.Equal(t, int64(0), sys.Clock())
	})
}
