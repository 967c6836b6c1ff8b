package shadow

import (
	"strconv"
	"strings"
)

// ColorMode selects how items of a world serialize their color.
type ColorMode string

const (
	ColorModeRGBA ColorMode = "rgba"
	ColorModeHSLA ColorMode = "hsla"
)

const worldName = "World"

const menuText = "'p' = pause | 'r' = reset | 's' = stats | 'h' = hide "

// WorldOptions configures a new world. Width and height are in pixels; zero
// selects the viewport size.
type WorldOptions struct {
	Width        float64
	Height       float64
	Resolution   float64
	BorderRadius float64
	Location     *Vector
	ColorMode    ColorMode
	Gravity      *Vector
	C            float64

	Opacity         *float64
	ZIndex          *int
	BackgroundColor *RGB
	Hue             float64
	Saturation      *float64
	Lightness       *float64

	BoundToWindow bool
	NoMenu        bool
	MenuText      string

	// AfterResize runs on the first world once resizing has settled.
	AfterResize func()
}

// World is a container: it owns items, their pool and the draw buffer that
// is committed to its surface once per frame.
type World struct {
	id  string
	seq uint64

	Width        float64
	Height       float64
	Resolution   float64
	BorderRadius float64
	Location     Vector
	// Bounds is top, right, bottom, left.
	Bounds    [4]float64
	ColorMode ColorMode
	Gravity   Vector
	C         float64

	Opacity         float64
	ZIndex          int
	BackgroundColor *RGB
	Hue             float64
	Saturation      float64
	Lightness       float64

	BoundToWindow bool
	NoMenu        bool
	MenuText      string
	MenuHidden    bool
	AfterResize   func()

	pool    Pool
	buffer  []byte
	paused  bool
	surface Surface
}

func newWorld(seq uint64, surface Surface, opts WorldOptions, viewW, viewH float64) *World {
	if surface == nil {
		surface = &MemorySurface{}
	}
	w := &World{
		id:            worldName + strconv.FormatUint(seq, 10),
		seq:           seq,
		Resolution:    4,
		BorderRadius:  opts.BorderRadius,
		ColorMode:     ColorModeRGBA,
		Gravity:       Vector{X: 0, Y: 0.01},
		C:             0.1,
		Opacity:       1,
		ZIndex:        1,
		Hue:           opts.Hue,
		Saturation:    1,
		Lightness:     0.5,
		BoundToWindow: opts.BoundToWindow,
		NoMenu:        opts.NoMenu,
		MenuText:      opts.MenuText,
		AfterResize:   opts.AfterResize,
		surface:       surface,
	}
	w.BackgroundColor = opts.BackgroundColor
	if opts.Resolution > 0 {
		w.Resolution = opts.Resolution
	}
	if opts.ColorMode != "" {
		w.ColorMode = opts.ColorMode
	}
	if opts.Gravity != nil {
		w.Gravity = *opts.Gravity
	}
	if opts.C != 0 {
		w.C = opts.C
	}
	if opts.Opacity != nil {
		w.Opacity = *opts.Opacity
	}
	if opts.ZIndex != nil {
		w.ZIndex = *opts.ZIndex
	}
	if opts.Saturation != nil {
		w.Saturation = *opts.Saturation
	}
	if opts.Lightness != nil {
		w.Lightness = *opts.Lightness
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = viewW
	}
	if height <= 0 {
		height = viewH
	}
	w.Width = width / w.Resolution
	w.Height = height / w.Resolution

	if opts.Location != nil {
		w.Location = *opts.Location
	} else {
		w.center(viewW, viewH)
	}
	w.Bounds = [4]float64{0, w.Width, w.Height, 0}
	return w
}

// viewportUnits converts a viewport size in pixels to world units.
func (w *World) viewportUnits(viewW, viewH float64) (float64, float64) {
	return viewW / w.Resolution, viewH / w.Resolution
}

// fit sizes the world to the viewport and centers it.
func (w *World) fit(viewW, viewH float64) {
	w.Width, w.Height = w.viewportUnits(viewW, viewH)
	w.Bounds = [4]float64{0, w.Width, w.Height, 0}
	w.center(viewW, viewH)
}

func (w *World) center(viewW, viewH float64) {
	w.Location = Vector{
		X: (viewW - w.Width*w.Resolution) / 2,
		Y: (viewH - w.Height*w.Resolution) / 2,
	}
}

func (w *World) Name() string          { return worldName }
func (w *World) ID() string            { return w.id }
func (w *World) Seq() uint64           { return w.seq }
func (w *World) Kind() Kind            { return KindWorld }
func (w *World) Owner() (*World, bool) { return nil, false }

// Pool returns the world's free list of retired items.
func (w *World) Pool() *Pool { return &w.pool }

// Surface returns the presentation surface the world commits to.
func (w *World) Surface() Surface { return w.surface }

// Paused reports whether stepping is frozen for this world. Drawing continues.
func (w *World) Paused() bool { return w.paused }

func (w *World) SetPaused(paused bool) { w.paused = paused }

// ToggleMenu flips the menu overlay visibility.
func (w *World) ToggleMenu() {
	w.MenuHidden = !w.MenuHidden
}

// MenuLabel returns the key help shown by the menu overlay, or "" when the
// world has no menu or the menu is hidden.
func (w *World) MenuLabel() string {
	if w.NoMenu || w.MenuHidden {
		return ""
	}
	return menuText + w.MenuText
}

// Background returns the world's background as a CSS color value.
func (w *World) Background() string {
	var b strings.Builder
	switch w.ColorMode {
	case ColorModeHSLA:
		b.WriteString("hsla(")
		b.WriteString(formatNumber(w.Hue))
		b.WriteString(", ")
		b.WriteString(formatNumber(w.Saturation * 100))
		b.WriteString("%, ")
		b.WriteString(formatNumber(w.Lightness * 100))
		b.WriteString("%, ")
		b.WriteString(formatNumber(w.Opacity))
		b.WriteString(")")
	default:
		if w.BackgroundColor == nil {
			return "transparent"
		}
		c := w.BackgroundColor
		b.WriteString("rgba(")
		for _, ch := range c {
			b.WriteString(strconv.Itoa(int(ch)))
			b.WriteString(", ")
		}
		b.WriteString(formatNumber(w.Opacity))
		b.WriteString(")")
	}
	return b.String()
}

func (w *World) Attr(name string) (any, bool) {
	switch name {
	case "id":
		return w.id, true
	case "name":
		return worldName, true
	case "width":
		return w.Width, true
	case "height":
		return w.Height, true
	case "resolution":
		return w.Resolution, true
	case "colorMode":
		return string(w.ColorMode), true
	case "borderRadius":
		return w.BorderRadius, true
	case "location":
		return w.Location, true
	case "gravity":
		return w.Gravity, true
	case "c":
		return w.C, true
	case "opacity":
		return w.Opacity, true
	case "zIndex":
		return w.ZIndex, true
	case "boundToWindow":
		return w.BoundToWindow, true
	}
	return nil, false
}

// commit hands the accumulated buffer to the surface, minus its trailing
// separator, and clears it.
func (w *World) commit() {
	buf := w.buffer
	if n := len(buf); n > 0 {
		buf = buf[:n-1]
	}
	w.surface.SetBoxShadow(string(buf))
	w.surface.SetBorderRadius(formatNumber(w.BorderRadius) + "%")
	w.buffer = w.buffer[:0]
}
