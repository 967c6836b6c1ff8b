package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitshadow/shadow"
)

// SpawnPanel queues new items of a registered kind and exposes the
// keyboard controls as buttons.
type SpawnPanel struct {
	kind  string
	x, y  float32
	count int32
}

func NewSpawnPanel() *SpawnPanel {
	return &SpawnPanel{count: 1}
}

func (sp *SpawnPanel) Render(sys *shadow.System) {
	if !imgui.BeginV("Spawn", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, name := range sys.Factories().Names() {
		if imgui.SelectableBoolV(name, sp.kind == name, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			sp.kind = name
		}
	}
	imgui.Separator()

	imgui.SetNextItemWidth(150)
	imgui.InputFloat("x", &sp.x)
	imgui.SetNextItemWidth(150)
	imgui.InputFloat("y", &sp.y)
	imgui.SetNextItemWidth(150)
	imgui.InputInt("count", &sp.count)

	if sp.kind != "" && imgui.Button(fmt.Sprintf("Spawn %d %s", sp.count, sp.kind)) {
		sp.Queue(sys)
	}

	imgui.Separator()
	if imgui.Button("Pause") {
		sys.PressKey(shadow.KeyPause)
	}
	imgui.SameLine()
	if imgui.Button("Step") {
		sys.PressKey(shadow.KeyStepForward)
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		sys.PressKey(shadow.KeyReset)
	}
	imgui.SameLine()
	if imgui.Button("Menu") {
		sys.PressKey(shadow.KeyMenu)
	}

	imgui.End()
}

// Queue adds count items of the selected kind at the panel location on the
// next tick.
func (sp *SpawnPanel) Queue(sys *shadow.System) {
	for i := int32(0); i < sp.count; i++ {
		sys.Commands().Add(sp.kind, shadow.Options{
			Location: shadow.Vec(float64(sp.x), float64(sp.y)),
		})
	}
}

// Select sets the kind and location used by Queue.
func (sp *SpawnPanel) Select(kind string, x, y float32, count int32) {
	sp.kind, sp.x, sp.y, sp.count = kind, x, y, count
}
