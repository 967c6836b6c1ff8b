package script

import (
	"fmt"

	"github.com/plus3/bitshadow/shadow"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Scripted is an item whose init and step hooks are Lua functions. The hooks
// receive the item as a table and mutate it; numeric fields are copied back
// afterwards. Setting self.destroy retires the item.
type Scripted struct {
	shadow.Item
	engine *Engine
	def    *lua.LTable
}

func (s *Scripted) Init(shadow.Options) error {
	return s.call("init", nil)
}

func (s *Scripted) Step(f *shadow.Frame) {
	if err := s.call("step", f); err != nil {
		s.engine.log.Error("lua step failed", zap.String("id", s.ID()), zap.Error(err))
		return
	}
	if s.Props["destroy"] == true {
		f.System.Destroy(s)
	}
}

func (s *Scripted) call(hook string, f *shadow.Frame) error {
	fn := s.def.RawGetString(hook)
	if fn == lua.LNil {
		return nil
	}
	vm := s.engine.vm
	self := s.pack(vm)
	args := []lua.LValue{self}
	if f != nil {
		args = append(args, packFrame(vm, f, s.World()))
	}
	if err := vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return fmt.Errorf("%s.%s: %w", s.Name(), hook, err)
	}
	s.unpack(self)
	return nil
}

func (s *Scripted) pack(vm *lua.LState) *lua.LTable {
	t := vm.NewTable()
	t.RawSetString("id", lua.LString(s.ID()))
	t.RawSetString("name", lua.LString(s.Name()))
	if s.Location != nil {
		t.RawSetString("x", lua.LNumber(s.Location.X))
		t.RawSetString("y", lua.LNumber(s.Location.Y))
	}
	if s.Velocity != nil {
		t.RawSetString("vx", lua.LNumber(s.Velocity.X))
		t.RawSetString("vy", lua.LNumber(s.Velocity.Y))
	}
	for name, v := range s.numbers() {
		t.RawSetString(name, lua.LNumber(*v))
	}
	t.RawSetString("r", lua.LNumber(s.Color[0]))
	t.RawSetString("g", lua.LNumber(s.Color[1]))
	t.RawSetString("b", lua.LNumber(s.Color[2]))
	return t
}

func (s *Scripted) unpack(t *lua.LTable) {
	for name, v := range s.numbers() {
		if n, ok := number(t, name); ok {
			*v = n
		}
	}
	x, okX := number(t, "x")
	y, okY := number(t, "y")
	if okX || okY {
		s.Location = &shadow.Vector{X: x, Y: y}
	}
	vx, okX := number(t, "vx")
	vy, okY := number(t, "vy")
	if okX || okY {
		s.Velocity = &shadow.Vector{X: vx, Y: vy}
	}
	for i, key := range []string{"r", "g", "b"} {
		if n, ok := number(t, key); ok {
			s.Color[i] = uint8(max(0, min(255, n)))
		}
	}
	if t.RawGetString("destroy") == lua.LTrue {
		if s.Props == nil {
			s.Props = map[string]any{}
		}
		s.Props["destroy"] = true
	}
}

func (s *Scripted) numbers() map[string]*float64 {
	return map[string]*float64{
		"scale":      &s.Scale,
		"opacity":    &s.Opacity,
		"blur":       &s.Blur,
		"hue":        &s.Hue,
		"saturation": &s.Saturation,
		"lightness":  &s.Lightness,
		"angle":      &s.Angle,
		"width":      &s.Width,
		"height":     &s.Height,
	}
}

func packFrame(vm *lua.LState, f *shadow.Frame, w *shadow.World) *lua.LTable {
	t := vm.NewTable()
	t.RawSetString("clock", lua.LNumber(f.Clock))
	t.RawSetString("mouse_x", lua.LNumber(f.Input.Location.X))
	t.RawSetString("mouse_y", lua.LNumber(f.Input.Location.Y))
	if w != nil {
		t.RawSetString("world_width", lua.LNumber(w.Width))
		t.RawSetString("world_height", lua.LNumber(w.Height))
		t.RawSetString("gravity_x", lua.LNumber(w.Gravity.X))
		t.RawSetString("gravity_y", lua.LNumber(w.Gravity.Y))
	}
	return t
}

func number(t *lua.LTable, key string) (float64, bool) {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}
