package shadow_test

import (
	"testing"

	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Run("window limits recorded frames", func(t *testing.T) {
		sys, host := newTestSystem(shadow.WithRecording(10, 12))
		require.NoError(t, sys.Init(func(s *shadow.System) error {
			_, err := s.Add("Dot", shadow.Options{Location: shadow.Vec(1, 1)})
			return err
		}))

		_, err := host.FireN(15)
		require.NoError(t, err)

		var frames []int64
		for _, rec := range sys.Recorder().Records() {
			frames = append(frames, rec.Frame)
			assert.Len(t, rec.Items, 1)
		}
		assert.Equal(t, []int64{10, 11, 12}, frames)
	})

	t.Run("snapshot is normalized", func(t *testing.T) {
		sys, _ := newTestSystem(shadow.WithRecording(-1, -1), shadow.WithNoStartLoop())
		require.NoError(t, sys.Init(nil))

		_, err := sys.Add("Item", shadow.Options{
			Location: shadow.Vec(1.234, 5.678),
			Velocity: shadow.Vec(0.126, -1),
			Color:    &shadow.RGB{1, 2, 3},
			Opacity:  shadow.Float(0.456),
		})
		require.NoError(t, err)
		// zero opacity items are not recorded
		sys.Add("Item", shadow.Options{Opacity: shadow.Float(0)})

		require.NoError(t, sys.Start())

		records := sys.Recorder().Drain()
		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, int64(0), rec.Frame)
		require.Len(t, rec.Items, 1)

		item := rec.Items[0]
		assert.Equal(t, "Item2", item["id"])
		assert.Equal(t, "Item", item["name"])
		assert.Equal(t, map[string]any{"x": 1.23, "y": 5.68}, item["location"])
		assert.Equal(t, map[string]any{"x": 0.13, "y": -1.0}, item["velocity"])
		assert.Equal(t, []int{1, 2, 3}, item["color"])
		assert.Equal(t, 0.46, item["opacity"])
		assert.NotContains(t, item, "blur")

		assert.Equal(t, "World1", rec.World["id"])
		assert.Equal(t, "rgba", rec.World["colorMode"])
		assert.Equal(t, 4.0, rec.World["resolution"])
		assert.NotContains(t, rec.World, "gravity")

		assert.Empty(t, sys.Recorder().Records())
	})

	t.Run("frame complete callback with a frame limit", func(t *testing.T) {
		var got []int64
		done := 0
		sys, host := newTestSystem(
			shadow.WithTotalFrames(4),
			shadow.WithRecording(1, 2),
			shadow.WithFrameComplete(func(frame int64, rec *shadow.FrameRecord) {
				require.NotNil(t, rec)
				assert.Equal(t, frame, rec.Frame)
				got = append(got, frame)
			}),
			shadow.WithTotalFramesCallback(func() { done++ }),
		)
		require.NoError(t, sys.Init(func(s *shadow.System) error {
			_, err := s.Add("Item", shadow.Options{Location: shadow.Vec(0, 0)})
			return err
		}))

		n, err := host.FireN(10)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []int64{1, 2}, got)
		assert.Equal(t, 1, done)
		assert.Equal(t, shadow.StateStopped, sys.State())
		assert.Equal(t, int64(4), sys.Clock())
		assert.False(t, host.Pending())
		assert.Empty(t, sys.Recorder().Records())
	})

	t.Run("frame complete without recording", func(t *testing.T) {
		var got []int64
		sys, host := newTestSystem(
			shadow.WithTotalFrames(3),
			shadow.WithFrameComplete(func(frame int64, rec *shadow.FrameRecord) {
				assert.Nil(t, rec)
				got = append(got, frame)
			}),
		)
		require.NoError(t, sys.Init(nil))
		_, err := host.FireN(5)
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 1, 2}, got)
	})

	t.Run("window needs both bounds", func(t *testing.T) {
		rec := shadow.NewRecorder()
		rec.StartFrame = 5
		assert.True(t, rec.InWindow(1))
		rec.EndFrame = 6
		assert.False(t, rec.InWindow(4))
		assert.True(t, rec.InWindow(5))
		assert.True(t, rec.InWindow(6))
		assert.False(t, rec.InWindow(7))
	})
}
