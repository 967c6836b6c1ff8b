package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitshadow/shadow"
)

// EntityRow is one line of the entity browser.
type EntityRow struct {
	Seq   uint64
	ID    string
	Name  string
	Kind  shadow.Kind
	World string
}

// Browser columns, in table order.
const (
	ColumnSeq = iota
	ColumnName
	ColumnKind
	ColumnWorld
)

type EntityBrowser struct {
	rows          []EntityRow
	lastClock     int64
	lastCount     int
	sortColumn    int
	sortAscending bool

	selected    string
	filterText  string
	perPage     int
	currentPage int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{
		lastClock:     -1,
		sortAscending: true,
		perPage:       perPage,
	}
}

// Selected returns the id of the selected entity, or "".
func (eb *EntityBrowser) Selected() string {
	return eb.selected
}

func (eb *EntityBrowser) Render(sys *shadow.System) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if sys.Clock() != eb.lastClock || sys.Count() != eb.lastCount {
		eb.rows = BuildRows(sys.Entities())
		SortRows(eb.rows, eb.sortColumn, eb.sortAscending)
		eb.lastClock, eb.lastCount = sys.Clock(), sys.Count()
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := FilterRows(eb.rows, eb.filterText)
	start := min(eb.currentPage*eb.perPage, len(filtered))
	end := min(start+eb.perPage, len(filtered))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Seq")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("World")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortRows(eb.rows, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.Seq), eb.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(row.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(row.World)
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.perPage {
		totalPages := (len(filtered) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// BuildRows snapshots entities for display.
func BuildRows(entities []shadow.Entity) []EntityRow {
	rows := make([]EntityRow, 0, len(entities))
	for _, e := range entities {
		row := EntityRow{Seq: e.Seq(), ID: e.ID(), Name: e.Name(), Kind: e.Kind()}
		if w, ok := e.Owner(); ok {
			row.World = w.ID()
		}
		rows = append(rows, row)
	}
	return rows
}

// SortRows orders rows by column, falling back to sequence number for ties.
func SortRows(rows []EntityRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less, equal bool

		switch column {
		case ColumnName:
			less, equal = a.Name < b.Name, a.Name == b.Name
		case ColumnKind:
			less, equal = a.Kind < b.Kind, a.Kind == b.Kind
		case ColumnWorld:
			less, equal = a.World < b.World, a.World == b.World
		}
		if column == ColumnSeq || equal {
			less = a.Seq < b.Seq
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// FilterRows keeps rows whose id, name or world contains text, ignoring case.
func FilterRows(rows []EntityRow, text string) []EntityRow {
	if text == "" {
		return rows
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.ID), needle) ||
			strings.Contains(strings.ToLower(row.Name), needle) ||
			strings.Contains(strings.ToLower(row.World), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
