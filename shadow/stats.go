package shadow

import (
	"time"

	"go.uber.org/zap"
)

// Phase identifies a timed section of the tick.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseDraw
	PhaseCommit
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseStep:
		return "step"
	case PhaseDraw:
		return "draw"
	case PhaseCommit:
		return "commit"
	}
	return "unknown"
}

// Stats summarizes scheduler execution.
type Stats struct {
	Frames   int64
	Entities int
	Worlds   int
	Phases   []PhaseStats
}

// PhaseStats provides execution statistics for a single tick phase.
type PhaseStats struct {
	Phase          Phase
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type phaseTimer struct {
	phases [phaseCount]phaseStatsInternal
}

func newPhaseTimer() *phaseTimer {
	t := &phaseTimer{}
	t.reset()
	return t
}

func (t *phaseTimer) reset() {
	for i := range t.phases {
		t.phases[i] = phaseStatsInternal{minDuration: time.Duration(1<<63 - 1)}
	}
}

func (t *phaseTimer) observe(p Phase, duration time.Duration) {
	stats := &t.phases[p]
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

func (t *phaseTimer) snapshot() []PhaseStats {
	out := make([]PhaseStats, len(t.phases))
	for i, internal := range t.phases {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}
		out[i] = PhaseStats{
			Phase:          Phase(i),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}
	return out
}

// timed runs fn and records its duration under p. In trace mode the duration
// is also logged.
func (s *System) timed(p Phase, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)
	s.timer.observe(p, duration)
	if s.trace {
		s.log.Debug("phase", zap.Stringer("phase", p), zap.Duration("took", duration), zap.Int64("frame", s.clock))
	}
	return err
}
