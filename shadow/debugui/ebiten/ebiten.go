// Package ebiten provides Dear ImGui backend integration for the Ebiten game
// engine and wraps the diagnostics UI as an ebitenhost overlay.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bitshadow/shadow/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is
// disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Overlay draws a debugui.UI with the ImGui backend.
type Overlay struct {
	backend ImguiBackend
	ui      *debugui.UI
	timer   *debugui.FrameTimer
}

func NewOverlay(backend ImguiBackend, ui *debugui.UI) *Overlay {
	return &Overlay{backend: backend, ui: ui, timer: debugui.NewFrameTimer()}
}

func (o *Overlay) Toggle() {
	o.ui.Toggle()
}

func (o *Overlay) Update() {
	o.backend.BeginFrame()
	o.ui.Render(o.timer.GetDeltaTime())
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

func (o *Overlay) CapturesPointer() bool {
	return o.ui.Input.WantCaptureMouse
}
