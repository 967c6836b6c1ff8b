package shadow_test

import (
	"testing"

	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
)

func TestIDAllocator(t *testing.T) {
	t.Run("strictly increasing from one", func(t *testing.T) {
		var ids shadow.IDAllocator
		assert.Equal(t, uint64(1), ids.Next())
		assert.Equal(t, uint64(2), ids.Next())
		assert.Equal(t, uint64(3), ids.Next())
		assert.Equal(t, uint64(3), ids.Last())
	})

	t.Run("reset restarts at one", func(t *testing.T) {
		var ids shadow.IDAllocator
		ids.Next()
		ids.Next()
		ids.Reset()
		assert.Equal(t, uint64(1), ids.Next())
	})
}
