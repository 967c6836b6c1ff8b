package shadow_test

import (
	"testing"

	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("insertion order is creation order", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		a, _ := sys.Add("Dot", shadow.Options{})
		b, _ := sys.Add("Mayfly", shadow.Options{})

		reg := sys.Registry()
		require.Equal(t, 3, reg.Count())
		assert.Equal(t, sys.FirstWorld(), reg.First())
		assert.Equal(t, a, reg.At(1))
		assert.Equal(t, b, reg.Last())
	})

	t.Run("remove where returns removed entries in order", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		a, _ := sys.Add("Dot", shadow.Options{})
		sys.Add("Mayfly", shadow.Options{})
		c, _ := sys.Add("Dot", shadow.Options{})

		removed := sys.Registry().RemoveWhere(func(e shadow.Entity) bool {
			return e.Name() == "Dot"
		})
		assert.Equal(t, []shadow.Entity{a, c}, removed)
		assert.Equal(t, 2, sys.Count())
	})

	t.Run("reverse iteration survives removal of the cursor", func(t *testing.T) {
		var visits []string
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		for i := 0; i < 5; i++ {
			props := map[string]any{"log": &visits, "die": i == 2}
			_, err := sys.Add("Mayfly", shadow.Options{Props: props})
			require.NoError(t, err)
		}

		require.NoError(t, sys.Start())

		assert.Equal(t, []string{"Mayfly6", "Mayfly5", "Mayfly4", "Mayfly3", "Mayfly2"}, visits)
		assert.Equal(t, 5, sys.Count())
		assert.Nil(t, sys.Item("Mayfly4"))
	})

	t.Run("each reverse stops on error", func(t *testing.T) {
		var reg shadow.Registry
		sys, _ := newTestSystem(shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))
		a, _ := sys.Add("Dot", shadow.Options{})
		b, _ := sys.Add("Dot", shadow.Options{})
		reg.Append(a)
		reg.Append(b)

		var seen []shadow.Entity
		err := reg.EachReverse(func(e shadow.Entity) error {
			seen = append(seen, e)
			return errBroken
		})
		assert.ErrorIs(t, err, errBroken)
		assert.Equal(t, []shadow.Entity{b}, seen)
	})
}
