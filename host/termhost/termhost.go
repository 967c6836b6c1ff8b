// Package termhost drives a shadow system from a terminal. Each committed
// shadow is painted as a block of cells.
package termhost

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bitshadow/boxshadow"
	"github.com/plus3/bitshadow/shadow"
	"go.uber.org/zap"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 4
	CellHeight = 8
)

const block = '█'

// Host is the frame facility and event source for terminal runs.
type Host struct {
	screen   tcell.Screen
	interval time.Duration
	log      *zap.Logger

	next     shadow.FrameFunc
	surfaces []*Surface
	stats    *StatsPanel
}

func New(screen tcell.Screen, interval time.Duration, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		screen:   screen,
		interval: interval,
		log:      log,
		stats:    &StatsPanel{},
	}
}

func (h *Host) RequestFrame(fn shadow.FrameFunc) {
	h.next = fn
}

// Pending reports whether a frame has been requested.
func (h *Host) Pending() bool {
	return h.next != nil
}

// Viewport reports the screen size in pixels.
func (h *Host) Viewport() shadow.Viewport {
	return shadow.ViewportFunc(func() (float64, float64) {
		w, ht := h.screen.Size()
		return float64(w * CellWidth), float64(ht * CellHeight)
	})
}

// Stats returns the panel toggled by the stats key. Pass it to
// shadow.WithOverlay.
func (h *Host) Stats() *StatsPanel {
	return h.stats
}

// AddWorld adds a world to sys that commits to a new terminal surface.
func (h *Host) AddWorld(sys *shadow.System, opts shadow.WorldOptions) *shadow.World {
	surf := &Surface{}
	w := sys.AddWorld(surf, opts)
	surf.world = w
	h.surfaces = append(h.surfaces, surf)
	return w
}

// Frame fires the pending frame, if any, and repaints the screen.
func (h *Host) Frame(sys *shadow.System) error {
	if fn := h.next; fn != nil {
		h.next = nil
		if err := fn(); err != nil {
			return err
		}
	}
	h.Draw(sys)
	return nil
}

// Draw paints every surface, the first world's menu and the stats panel.
func (h *Host) Draw(sys *shadow.System) {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	for _, surf := range h.surfaces {
		if err := surf.Err(); err != nil {
			h.log.Warn("box shadow", zap.String("world", surf.world.ID()), zap.Error(err))
		}
		surf.paint(h.screen, cols, rows)
	}
	if w := sys.FirstWorld(); w != nil {
		h.text(0, rows-1, w.MenuLabel(), tcell.StyleDefault)
	}
	if h.stats.Visible {
		for i, line := range h.stats.Lines(sys) {
			h.text(0, i, line, tcell.StyleDefault.Reverse(true))
		}
	}
	h.screen.Show()
}

func (h *Host) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// HandleEvent applies a terminal event to sys. It returns false when the
// user asked to quit.
func (h *Host) HandleEvent(sys *shadow.System, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			sys.PressKey(shadow.KeyStepForward)
		case tcell.KeyRune:
			if k := shadow.KeyForRune(ev.Rune()); k != 0 {
				sys.PressKey(k)
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		sys.RecordPointer(float64(x*CellWidth), float64(y*CellHeight))
	case *tcell.EventResize:
		h.screen.Sync()
		sys.Resize()
	}
	return true
}

// Run polls terminal events and fires frames on the host interval until the
// user quits, ctx is done or the system stops requesting frames.
func (h *Host) Run(ctx context.Context, sys *shadow.System) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !h.HandleEvent(sys, ev) {
				return nil
			}
		case <-ticker.C:
			if err := h.Frame(sys); err != nil {
				return err
			}
			if !h.Pending() {
				h.log.Info("no frame requested", zap.Stringer("state", sys.State()))
				return nil
			}
		}
	}
}

// Surface receives the commits of one world.
type Surface struct {
	boxshadow.Surface
	world *shadow.World
}

// paint draws the shadows back to front so the first entry ends on top.
func (s *Surface) paint(screen tcell.Screen, cols, rows int) {
	var ox, oy float64
	if s.world != nil {
		ox, oy = s.world.Location.X, s.world.Location.Y
	}
	shadows := s.Shadows()
	for i := len(shadows) - 1; i >= 0; i-- {
		sh := shadows[i]
		if sh.Color.A == 0 {
			continue
		}
		x0, y0, x1, y1 := sh.Rect()
		c0, c1 := cellSpan(ox+x0, ox+x1, CellWidth)
		r0, r1 := cellSpan(oy+y0, oy+y1, CellHeight)
		style := tcell.StyleDefault.Foreground(blend(sh))
		for y := max(r0, 0); y < min(r1, rows); y++ {
			for x := max(c0, 0); x < min(c1, cols); x++ {
				screen.SetContent(x, y, block, nil, style)
			}
		}
	}
}

// cellSpan maps a pixel range to the cells it starts in. Every range covers
// at least one cell.
func cellSpan(p0, p1 float64, size int) (int, int) {
	c0 := int(math.Floor(p0 / float64(size)))
	c1 := int(math.Floor(p1 / float64(size)))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return c0, c1
}

// blend composites the shadow color over a black terminal background.
func blend(sh boxshadow.Shadow) tcell.Color {
	c := sh.Color
	a := int32(c.A)
	return tcell.NewRGBColor(int32(c.R)*a/255, int32(c.G)*a/255, int32(c.B)*a/255)
}
