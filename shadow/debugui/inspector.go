package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bitshadow/shadow"
)

// Inspector edits the exported fields of the selected item in place.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (in *Inspector) Render(sys *shadow.System, selected string) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if selected == "" {
		imgui.Text("No entity selected")
		return
	}
	e := sys.Item(selected)
	if e == nil {
		imgui.Text(fmt.Sprintf("%s is no longer live", selected))
		return
	}

	imgui.Text(fmt.Sprintf("%s (%s)", e.ID(), e.Kind()))
	if w, ok := e.Owner(); ok {
		imgui.Text(fmt.Sprintf("World: %s", w.ID()))
	}
	imgui.Separator()

	val := reflect.ValueOf(e)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	in.renderStruct(val)

	if t, ok := e.(shadow.Thing); ok {
		imgui.Separator()
		if imgui.Button("Destroy") {
			sys.Commands().Destroy(t)
		}
	}
}

func (in *Inspector) renderStruct(val reflect.Value) {
	group := ""
	for _, f := range fieldCache.Fields(val.Type()) {
		if f.Group != group {
			group = f.Group
			imgui.Separator()
			imgui.Text(group)
		}

		fv := val.FieldByIndex(f.Path)
		if f.Pointer {
			if fv.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", f.Name))
				continue
			}
			fv = fv.Elem()
		}

		switch {
		case !fv.CanAddr():
			imgui.Text(fmt.Sprintf("%s: %v", f.Name, fv.Interface()))
		case f.Widget == WidgetVector:
			in.renderVector(f.Name, fv)
		case f.Widget == WidgetColor:
			in.renderColor(f.Name, fv)
		case f.Widget == WidgetReadOnly:
			imgui.Text(fmt.Sprintf("%s: %s", f.Name, f.Type))
		default:
			in.renderField(f.Name, fv)
		}
	}
}

func (in *Inspector) renderVector(name string, val reflect.Value) {
	v := val.Addr().Interface().(*shadow.Vector)
	x, y := float32(v.X), float32(v.Y)
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputFloat("##"+name+".x", &x) {
		v.X = float64(x)
	}
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputFloat("##"+name+".y", &y) {
		v.Y = float64(y)
	}
}

func (in *Inspector) renderColor(name string, val reflect.Value) {
	c := val.Addr().Interface().(*shadow.RGB)
	imgui.Text(name + ":")
	for i := range c {
		ch := int32(c[i])
		imgui.SameLine()
		imgui.SetNextItemWidth(70)
		if imgui.InputInt(fmt.Sprintf("##%s.%d", name, i), &ch) {
			c[i] = uint8(max(0, min(255, ch)))
		}
	}
}

func (in *Inspector) renderField(name string, val reflect.Value) {
	id := "##" + name
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			in.renderStruct(val)
			imgui.TreePop()
		}

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
			return
		}
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			keys := make([]string, 0, val.Len())
			for _, k := range val.MapKeys() {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			for _, k := range keys {
				imgui.BulletText(fmt.Sprintf("%s: %v", k, val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key())).Interface()))
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
