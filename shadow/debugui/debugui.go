// Package debugui renders Dear ImGui diagnostics for a shadow system.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitshadow/shadow"
)

// ImguiItem holds a Dear ImGui render function run once per visible frame.
type ImguiItem struct {
	Render func(deltaTime float32)
}

// ImguiInputState tracks whether ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI is the diagnostics overlay. It satisfies shadow.Overlay so the stats
// key shows and hides it.
type UI struct {
	sys     *shadow.System
	visible bool
	items   []ImguiItem

	Input ImguiInputState
}

// New returns a hidden overlay with the default panels.
func New(sys *shadow.System) *UI {
	ui := &UI{sys: sys}

	stats := NewPerformanceStats(120)
	browser := NewEntityBrowser(100)
	inspector := NewInspector()
	spawn := NewSpawnPanel()
	queries := NewQueryDebugger()
	worlds := NewWorldViewer()

	ui.Add(ImguiItem{Render: func(dt float32) { stats.Render(sys, dt) }})
	ui.Add(ImguiItem{Render: func(float32) { browser.Render(sys) }})
	ui.Add(ImguiItem{Render: func(float32) { inspector.Render(sys, browser.Selected()) }})
	ui.Add(ImguiItem{Render: func(float32) { spawn.Render(sys) }})
	ui.Add(ImguiItem{Render: func(float32) { queries.Render(sys) }})
	ui.Add(ImguiItem{Render: func(float32) { worlds.Render(sys) }})
	return ui
}

// Add appends a render function drawn after the existing ones.
func (ui *UI) Add(item ImguiItem) {
	ui.items = append(ui.items, item)
}

func (ui *UI) Toggle() {
	ui.visible = !ui.visible
}

func (ui *UI) Visible() bool {
	return ui.visible
}

// Render updates the input capture state and, when visible, runs every item.
// It must be called between the backend's BeginFrame and EndFrame.
func (ui *UI) Render(deltaTime float32) {
	io := imgui.CurrentIO()
	ui.Input.WantCaptureMouse = ui.visible && io.WantCaptureMouse()
	ui.Input.WantCaptureKeyboard = ui.visible && io.WantCaptureKeyboard()

	if !ui.visible {
		return
	}
	for _, item := range ui.items {
		item.Render(deltaTime)
	}
}
