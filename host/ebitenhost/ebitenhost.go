// Package ebitenhost runs a shadow system inside an ebiten game. Ebiten's
// Update drives the frame callback and every committed shadow is painted as
// a filled rectangle.
package ebitenhost

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/bitshadow/boxshadow"
	"github.com/plus3/bitshadow/shadow"
	"go.uber.org/zap"
)

// Overlay is drawn above the worlds. Implementations that also satisfy
// shadow.Overlay can be toggled with the stats key.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	// CapturesPointer reports whether the overlay consumes the pointer.
	CapturesPointer() bool
}

var keys = map[ebiten.Key]shadow.Key{
	ebiten.KeyArrowRight: shadow.KeyStepForward,
	ebiten.KeyH:          shadow.KeyMenu,
	ebiten.KeyP:          shadow.KeyPause,
	ebiten.KeyR:          shadow.KeyReset,
	ebiten.KeyS:          shadow.KeyStats,
}

// Game implements ebiten.Game and shadow.FrameHost.
type Game struct {
	sys     *shadow.System
	log     *zap.Logger
	next    shadow.FrameFunc
	overlay Overlay

	surfaces []*Surface
	touches  []ebiten.TouchID
	cursorX  int
	cursorY  int
	width    int
	height   int
}

// New returns a game with an initial window size in pixels.
func New(width, height int, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{log: log, width: width, height: height}
}

// Attach sets the system the game drives. The system must have been created
// with this game as its host.
func (g *Game) Attach(sys *shadow.System) {
	g.sys = sys
}

func (g *Game) SetOverlay(o Overlay) {
	g.overlay = o
}

func (g *Game) RequestFrame(fn shadow.FrameFunc) {
	g.next = fn
}

// Viewport reports the current layout size.
func (g *Game) Viewport() shadow.Viewport {
	return shadow.ViewportFunc(func() (float64, float64) {
		return float64(g.width), float64(g.height)
	})
}

// AddWorld adds a world to sys that commits to a new ebiten surface.
func (g *Game) AddWorld(sys *shadow.System, opts shadow.WorldOptions) *shadow.World {
	surf := &Surface{}
	w := sys.AddWorld(surf, opts)
	surf.world = w
	g.surfaces = append(g.surfaces, surf)
	return w
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for ek, k := range keys {
		if inpututil.IsKeyJustReleased(ek) {
			g.sys.PressKey(k)
		}
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.overlay == nil || !g.overlay.CapturesPointer() {
		g.pointer()
	}

	fn := g.next
	if fn == nil {
		g.log.Info("no frame requested", zap.Stringer("state", g.sys.State()))
		return ebiten.Termination
	}
	g.next = nil
	return fn()
}

func (g *Game) pointer() {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		x, y := ebiten.TouchPosition(g.touches[0])
		g.sys.RecordTouch(float64(x), float64(y))
		return
	}
	x, y := ebiten.CursorPosition()
	if x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY = x, y
	g.sys.RecordPointer(float64(x), float64(y))
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, surf := range g.surfaces {
		if err := surf.Err(); err != nil {
			g.log.Warn("box shadow", zap.String("world", surf.world.ID()), zap.Error(err))
		}
		surf.paint(screen)
	}
	if w := g.sys.FirstWorld(); w != nil {
		if label := w.MenuLabel(); label != "" {
			ebitenutil.DebugPrintAt(screen, label, 4, g.height-16)
		}
	}
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Run opens a resizable window and blocks until the game terminates.
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Layout tracks the window size and resizes the system when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.sys != nil {
			g.sys.Resize()
		}
	}
	if g.overlay != nil {
		g.overlay.Layout(g.width, g.height)
	}
	return g.width, g.height
}

// Surface receives the commits of one world.
type Surface struct {
	boxshadow.Surface
	world *shadow.World
}

// paint fills the world background and then the shadows back to front so the
// first entry ends on top.
func (s *Surface) paint(screen *ebiten.Image) {
	w := s.world
	ox, oy := float32(w.Location.X), float32(w.Location.Y)
	if bg, err := boxshadow.ParseColor(w.Background()); err == nil && bg.A > 0 {
		vector.DrawFilledRect(screen, ox, oy,
			float32(w.Width*w.Resolution), float32(w.Height*w.Resolution), bg, false)
	}

	shadows := s.Shadows()
	for i := len(shadows) - 1; i >= 0; i-- {
		sh := shadows[i]
		if sh.Color.A == 0 {
			continue
		}
		x0, y0, x1, y1 := sh.Rect()
		vector.DrawFilledRect(screen, ox+float32(x0), oy+float32(y0),
			float32(x1-x0), float32(y1-y0), sh.Color, false)
	}
}
