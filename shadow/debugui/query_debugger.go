package debugui

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitshadow/shadow"
)

// QueryDebugger runs name and attribute lookups against the live entities.
type QueryDebugger struct {
	selectedNames map[string]bool
	attr          string
	value         string
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{selectedNames: make(map[string]bool)}
}

func (qd *QueryDebugger) Render(sys *shadow.System) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Names:")
	imgui.Separator()
	if imgui.Button("Clear All") {
		qd.selectedNames = make(map[string]bool)
	}
	for _, name := range sys.NameCache().Names() {
		selected := qd.selectedNames[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				qd.selectedNames[name] = true
			} else {
				delete(qd.selectedNames, name)
			}
		}
	}

	imgui.Separator()
	imgui.InputTextWithHint("##attr", "attribute", &qd.attr, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	imgui.InputTextWithHint("##value", "value (optional)", &qd.value, imgui.InputTextFlagsNone, nil)
	imgui.Separator()

	names := make([]string, 0, len(qd.selectedNames))
	for name := range qd.selectedNames {
		names = append(names, name)
	}
	slices.Sort(names)

	if len(names) == 0 && qd.attr == "" {
		imgui.Text("No query")
		imgui.End()
		return
	}

	matches := RunQuery(sys, names, qd.attr, qd.value)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Matches") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("World")
			imgui.TableHeadersRow()

			for _, e := range matches {
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(e.ID())
				imgui.TableSetColumnIndex(1)
				if w, ok := e.Owner(); ok {
					imgui.Text(w.ID())
				}
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// RunQuery returns the active entities named in names, narrowed to those
// defining attr when it is set. A non-empty value must also match; it is
// compared as a number when it parses as one.
func RunQuery(sys *shadow.System, names []string, attr, value string) []shadow.Entity {
	var candidates []shadow.Entity
	if len(names) == 0 {
		candidates = sys.Entities()
	} else {
		for _, name := range names {
			candidates = append(candidates, sys.ItemsByName(name)...)
		}
	}
	if attr == "" {
		return candidates
	}

	var want []any
	if value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			want = append(want, f)
		} else {
			want = append(want, value)
		}
	}

	matched := sys.ItemsByAttribute(attr, want...)
	return slices.DeleteFunc(candidates, func(e shadow.Entity) bool {
		return !slices.Contains(matched, e)
	})
}
