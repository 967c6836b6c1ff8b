package shadow

import (
	"reflect"
	"slices"
)

func (s *System) Count() int {
	return s.registry.Count()
}

func (s *System) FirstWorld() *World {
	if len(s.worlds) == 0 {
		return nil
	}
	return s.worlds[0]
}

func (s *System) LastWorld() *World {
	if len(s.worlds) == 0 {
		return nil
	}
	return s.worlds[len(s.worlds)-1]
}

// FirstItem returns the oldest registry entry, world or item.
func (s *System) FirstItem() Entity {
	return s.registry.First()
}

// LastItem returns the newest registry entry.
func (s *System) LastItem() Entity {
	return s.registry.Last()
}

// World returns the world with the given id, or nil.
func (s *System) World(id string) *World {
	for _, w := range s.worlds {
		if w.id == id {
			return w
		}
	}
	return nil
}

// Entities returns a copy of the registry in creation order.
func (s *System) Entities() []Entity {
	return slices.Clone(s.registry.list)
}

// ItemsByName returns the live entities named name in registry order. When
// list is given it is filtered instead.
func (s *System) ItemsByName(name string, list ...Entity) []Entity {
	if list == nil {
		return s.cache.Active(name)
	}
	var out []Entity
	for _, e := range list {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}

// ItemsByAttribute returns every entity that defines attr. If val is given the
// attribute must also equal val[0].
func (s *System) ItemsByAttribute(attr string, val ...any) []Entity {
	var out []Entity
	for _, e := range s.registry.list {
		v, ok := e.Attr(attr)
		if !ok {
			continue
		}
		if len(val) > 0 && !reflect.DeepEqual(v, val[0]) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// UpdateItemPropsByName applies fn to every live item named name.
func (s *System) UpdateItemPropsByName(name string, fn func(Thing)) []Thing {
	var out []Thing
	for _, e := range s.cache.Active(name) {
		if t, ok := e.(Thing); ok {
			fn(t)
			out = append(out, t)
		}
	}
	return out
}

// UpdateItem applies fn to t and returns it.
func (s *System) UpdateItem(t Thing, fn func(Thing)) Thing {
	fn(t)
	return t
}

// Item finds an entity by string id, or nil.
func (s *System) Item(id string) Entity {
	for _, e := range s.registry.list {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// ItemBySeq finds a live item by numeric id.
func (s *System) ItemBySeq(seq uint64) (Thing, bool) {
	return s.items.Get(seq)
}
