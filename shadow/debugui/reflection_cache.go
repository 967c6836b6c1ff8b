package debugui

import (
	"reflect"
	"sync"

	"github.com/plus3/bitshadow/shadow"
)

// Widget selects how the inspector edits a field.
type Widget uint8

const (
	WidgetValue Widget = iota
	WidgetVector
	WidgetColor
	WidgetProps
	WidgetReadOnly
)

var (
	vectorType = reflect.TypeOf(shadow.Vector{})
	rgbType    = reflect.TypeOf(shadow.RGB{})
)

// FieldInfo describes one exported field of an inspected entity. Fields
// promoted from an embedded struct such as shadow.Item are flattened into the
// outer type and carry the embedded type's name as their Group.
type FieldInfo struct {
	Name    string
	Group   string
	Path    []int
	Type    reflect.Type
	Pointer bool
	Widget  Widget
}

// ReflectionCache memoizes the flattened field lists of inspected types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns the editable fields of t, or nil when t is not a struct.
// The kind's own fields come first, followed by each embedded group.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		own, embedded := collectFields(t, nil, "")
		fields = append(own, embedded...)
	}
	rc.fields[t] = fields
	return fields
}

func collectFields(t reflect.Type, prefix []int, group string) (own, embedded []FieldInfo) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		path := append(append([]int(nil), prefix...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			inner, nested := collectFields(f.Type, path, f.Name)
			embedded = append(embedded, inner...)
			embedded = append(embedded, nested...)
			continue
		}

		ft := f.Type
		pointer := ft.Kind() == reflect.Pointer
		if pointer {
			ft = ft.Elem()
		}
		own = append(own, FieldInfo{
			Name:    f.Name,
			Group:   group,
			Path:    path,
			Type:    ft,
			Pointer: pointer,
			Widget:  widgetFor(ft),
		})
	}
	return own, embedded
}

func widgetFor(t reflect.Type) Widget {
	switch {
	case t == vectorType:
		return WidgetVector
	case t == rgbType:
		return WidgetColor
	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String:
		return WidgetProps
	case t.Kind() == reflect.Func || t.Kind() == reflect.Chan || t.Kind() == reflect.Interface:
		return WidgetReadOnly
	}
	return WidgetValue
}

var fieldCache = NewReflectionCache()
