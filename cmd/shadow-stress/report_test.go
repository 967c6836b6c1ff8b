package main

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/bitshadow/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesFinalize(t *testing.T) {
	s := Samples{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Samples
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	sys := shadow.NewSystem(shadow.WithTotalFrames(2))
	require.NoError(t, sys.Init(nil))

	r := &Report{
		Duration:       time.Second,
		Walkers:        3,
		Stats:          sys.Stats(),
		GCPauseMetrics: true,
	}
	var b strings.Builder
	require.NoError(t, r.Generate(&b))

	out := b.String()
	assert.Contains(t, out, "- **Walkers:** 3")
	assert.Contains(t, out, "- **step:**")
	assert.Contains(t, out, "## GC Pause Durations")
}
