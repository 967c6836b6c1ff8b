package shadow

// Surface receives a world's composed style once per frame.
type Surface interface {
	SetBoxShadow(value string)
	SetBorderRadius(value string)
	Clear()
}

// MemorySurface keeps the last committed values. It is the default surface
// for worlds created without one.
type MemorySurface struct {
	BoxShadow    string
	BorderRadius string
	Commits      int
	Clears       int
}

func (m *MemorySurface) SetBoxShadow(value string) {
	m.BoxShadow = value
	m.Commits++
}

func (m *MemorySurface) SetBorderRadius(value string) {
	m.BorderRadius = value
}

func (m *MemorySurface) Clear() {
	m.BoxShadow = ""
	m.BorderRadius = ""
	m.Clears++
}

// Viewport reports the host window size in pixels.
type Viewport interface {
	Size() (w, h float64)
}

// FixedViewport is a viewport of constant size.
type FixedViewport struct {
	W, H float64
}

func (v FixedViewport) Size() (float64, float64) { return v.W, v.H }

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (float64, float64)

func (f ViewportFunc) Size() (float64, float64) { return f() }

// Overlay is a diagnostics display toggled from the keyboard.
type Overlay interface {
	Toggle()
}
