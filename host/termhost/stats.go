package termhost

import (
	"fmt"

	"github.com/plus3/bitshadow/shadow"
)

// StatsPanel is the terminal stats overlay.
type StatsPanel struct {
	Visible bool
}

func (p *StatsPanel) Toggle() {
	p.Visible = !p.Visible
}

// Lines renders the current scheduler stats, one phase per line.
func (p *StatsPanel) Lines(sys *shadow.System) []string {
	stats := sys.Stats()
	lines := []string{
		fmt.Sprintf("frame %d | entities %d | worlds %d | %s", stats.Frames, stats.Entities, stats.Worlds, sys.State()),
	}
	for _, ps := range stats.Phases {
		lines = append(lines, fmt.Sprintf("%-6s last %v avg %v max %v", ps.Phase, ps.LastDuration, ps.AvgDuration, ps.MaxDuration))
	}
	return lines
}
