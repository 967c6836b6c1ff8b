package shadow_test

import (
	"testing"

	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("destroyed item is recycled with its identity", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		first, err := sys.Add("Dot", shadow.Options{Opacity: shadow.Float(0.2), Location: shadow.Vec(1, 1)})
		require.NoError(t, err)
		id := first.ID()

		assert.True(t, sys.Destroy(first))
		assert.Equal(t, 1, sys.FirstWorld().Pool().Len())

		second, err := sys.Add("Dot", shadow.Options{})
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, id, second.ID())
		assert.Equal(t, 0, sys.FirstWorld().Pool().Len())

		// reset applied the defaults again
		assert.Equal(t, 1.0, second.Base().Opacity)
		assert.Nil(t, second.Base().Location)
	})

	t.Run("destroy twice is a no-op", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		dot, err := sys.Add("Dot", shadow.Options{})
		require.NoError(t, err)
		assert.True(t, sys.Destroy(dot))
		assert.False(t, sys.Destroy(dot))
		assert.Equal(t, 1, sys.FirstWorld().Pool().Len())
	})

	t.Run("pools are per world", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		a := sys.AddWorld(nil, shadow.WorldOptions{})
		b := sys.AddWorld(nil, shadow.WorldOptions{})
		require.NoError(t, sys.Init(nil))

		dot, err := sys.Add("Dot", shadow.Options{World: a})
		require.NoError(t, err)
		sys.Destroy(dot)

		other, err := sys.Add("Dot", shadow.Options{World: b})
		require.NoError(t, err)
		assert.NotSame(t, dot, other)
		assert.Equal(t, 1, a.Pool().Len())
		assert.Equal(t, 0, b.Pool().Len())
	})

	t.Run("acquire takes the first match by name", func(t *testing.T) {
		var pool shadow.Pool
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		dot1, _ := sys.Add("Dot", shadow.Options{})
		fly, _ := sys.Add("Mayfly", shadow.Options{})
		dot2, _ := sys.Add("Dot", shadow.Options{})
		pool.Recycle(dot1)
		pool.Recycle(fly)
		pool.Recycle(dot2)

		assert.True(t, pool.Has("Mayfly"))
		assert.Same(t, dot1, pool.Acquire("Dot"))
		assert.Same(t, dot2, pool.Acquire("Dot"))
		assert.Nil(t, pool.Acquire("Dot"))
		assert.Equal(t, 1, pool.Len())

		pool.Clear()
		assert.Equal(t, 0, pool.Len())
		assert.Nil(t, pool.Acquire("Mayfly"))
	})

	t.Run("failed init returns the item to the pool", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		_, err := sys.Add("Broken", shadow.Options{})
		assert.ErrorIs(t, err, errBroken)
		assert.Equal(t, 1, sys.Count())
		assert.True(t, sys.FirstWorld().Pool().Has("Broken"))
	})
}
