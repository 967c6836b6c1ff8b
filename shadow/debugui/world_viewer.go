package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitshadow/shadow"
)

// WorldRow summarizes one world.
type WorldRow struct {
	ID         string
	Width      float64
	Height     float64
	Resolution float64
	ColorMode  shadow.ColorMode
	Paused     bool
	Items      int
	Pooled     int
}

// WorldViewer lists worlds with their item and pool counts.
type WorldViewer struct {
	selected string
}

func NewWorldViewer() *WorldViewer {
	return &WorldViewer{}
}

func (wv *WorldViewer) Render(sys *shadow.System) {
	if !imgui.BeginV("World Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("WorldTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("World")
		imgui.TableSetupColumn("Size")
		imgui.TableSetupColumn("Color Mode")
		imgui.TableSetupColumn("Paused")
		imgui.TableSetupColumn("Items")
		imgui.TableSetupColumn("Pooled")
		imgui.TableHeadersRow()

		for _, row := range WorldRows(sys) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.ID, wv.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				wv.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%gx%g @%g", row.Width, row.Height, row.Resolution))
			imgui.TableNextColumn()
			imgui.Text(string(row.ColorMode))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", row.Paused))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Items))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Pooled))
		}
		imgui.EndTable()
	}

	if w := sys.World(wv.selected); w != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Background: %s", w.Background()))
		imgui.Text(fmt.Sprintf("Gravity: %.3f, %.3f", w.Gravity.X, w.Gravity.Y))
		if imgui.Button("Toggle Pause") {
			w.SetPaused(!w.Paused())
		}
		imgui.SameLine()
		if imgui.Button("Toggle Menu") {
			w.ToggleMenu()
		}
	}

	imgui.End()
}

// WorldRows builds one row per world in registration order.
func WorldRows(sys *shadow.System) []WorldRow {
	counts := make(map[*shadow.World]int)
	for _, e := range sys.Entities() {
		if w, ok := e.Owner(); ok {
			counts[w]++
		}
	}

	rows := make([]WorldRow, 0, len(sys.Worlds()))
	for _, w := range sys.Worlds() {
		rows = append(rows, WorldRow{
			ID:         w.ID(),
			Width:      w.Width,
			Height:     w.Height,
			Resolution: w.Resolution,
			ColorMode:  w.ColorMode,
			Paused:     w.Paused(),
			Items:      counts[w],
			Pooled:     w.Pool().Len(),
		})
	}
	return rows
}
