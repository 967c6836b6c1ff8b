package shadow

import "slices"

// Registry is the single ordered collection of live worlds and items.
// Insertion order is creation order; nothing is ever sorted.
type Registry struct {
	list []Entity
}

func (r *Registry) Append(e Entity) {
	r.list = append(r.list, e)
}

func (r *Registry) Count() int {
	return len(r.list)
}

// At returns the entity at index i.
func (r *Registry) At(i int) Entity {
	return r.list[i]
}

// First returns the oldest entity, or nil.
func (r *Registry) First() Entity {
	if len(r.list) == 0 {
		return nil
	}
	return r.list[0]
}

// Last returns the newest entity, or nil.
func (r *Registry) Last() Entity {
	if len(r.list) == 0 {
		return nil
	}
	return r.list[len(r.list)-1]
}

// Remove splices e out of the registry.
func (r *Registry) Remove(e Entity) bool {
	for i, cur := range r.list {
		if cur == e {
			r.list = slices.Delete(r.list, i, i+1)
			return true
		}
	}
	return false
}

// RemoveWhere removes every entity matching pred and returns them in
// registry order.
func (r *Registry) RemoveWhere(pred func(Entity) bool) []Entity {
	var removed []Entity
	for i := len(r.list) - 1; i >= 0; i-- {
		if pred(r.list[i]) {
			removed = append(removed, r.list[i])
			r.list = slices.Delete(r.list, i, i+1)
		}
	}
	slices.Reverse(removed)
	return removed
}

// Each visits entities front to back.
func (r *Registry) Each(fn func(Entity) error) error {
	for i := 0; i < len(r.list); i++ {
		if err := fn(r.list[i]); err != nil {
			return err
		}
	}
	return nil
}

// EachReverse visits entities back to front. The visitor may remove the entity
// under the cursor (or any newer one); older entries are not disturbed so
// nothing is skipped or visited twice.
func (r *Registry) EachReverse(fn func(Entity) error) error {
	for i := len(r.list) - 1; i >= 0; i-- {
		if i >= len(r.list) {
			continue
		}
		if err := fn(r.list[i]); err != nil {
			return err
		}
	}
	return nil
}
