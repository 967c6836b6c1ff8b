package shadow

import "slices"

// Pool is a world's free list of retired items.
//
// Acquire is a linear scan from the front returning the first item with a
// matching name. Pools stay small next to the registry, so there is no per-name
// index; first-match order is part of the recycling contract.
type Pool struct {
	items []Thing
}

// Recycle appends a destroyed item.
func (p *Pool) Recycle(t Thing) {
	p.items = append(p.items, t)
}

// Acquire removes and returns the first pooled item named name, or nil.
func (p *Pool) Acquire(name string) Thing {
	for i, t := range p.items {
		if t.Name() == name {
			p.items = slices.Delete(p.items, i, i+1)
			return t
		}
	}
	return nil
}

// Has reports whether an item named name is pooled.
func (p *Pool) Has(name string) bool {
	for _, t := range p.items {
		if t.Name() == name {
			return true
		}
	}
	return false
}

func (p *Pool) Len() int {
	return len(p.items)
}

// Clear drops every pooled item.
func (p *Pool) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}
