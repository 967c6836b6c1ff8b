package shadow

import (
	"slices"

	"github.com/kamstrup/intmap"
)

type cacheBucket struct {
	members []Entity
	active  *intmap.Map[uint64, bool]
}

// NameCache indexes entities by name. The activity map is authoritative for
// liveness; the membership list only grows and may hold destroyed or
// re-added entries.
type NameCache struct {
	buckets map[string]*cacheBucket
}

func NewNameCache() *NameCache {
	return &NameCache{buckets: make(map[string]*cacheBucket)}
}

func (c *NameCache) bucket(name string) *cacheBucket {
	b, ok := c.buckets[name]
	if !ok {
		b = &cacheBucket{active: intmap.New[uint64, bool](64)}
		c.buckets[name] = b
	}
	return b
}

// Touch records e as a live member of its name bucket.
func (c *NameCache) Touch(e Entity) {
	b := c.bucket(e.Name())
	b.members = append(b.members, e)
	b.active.Put(e.Seq(), true)
}

// SetActive flips e's liveness flag without compacting membership.
func (c *NameCache) SetActive(e Entity, active bool) {
	if b, ok := c.buckets[e.Name()]; ok {
		b.active.Put(e.Seq(), active)
	}
}

func (c *NameCache) IsActive(e Entity) bool {
	b, ok := c.buckets[e.Name()]
	if !ok {
		return false
	}
	active, _ := b.active.Get(e.Seq())
	return active
}

// Membership returns the raw membership list for name. It is advisory only.
func (c *NameCache) Membership(name string) []Entity {
	if b, ok := c.buckets[name]; ok {
		return b.members
	}
	return nil
}

// Active returns the live entities named name in registry order.
//
// Only the last occurrence of a re-added entity counts: a recycled item is
// appended to the registry again, so its newest membership entry carries its
// current position.
func (c *NameCache) Active(name string) []Entity {
	b, ok := c.buckets[name]
	if !ok {
		return nil
	}
	var out []Entity
	seen := make(map[Entity]struct{})
	for i := len(b.members) - 1; i >= 0; i-- {
		e := b.members[i]
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		if active, _ := b.active.Get(e.Seq()); active {
			out = append(out, e)
		}
	}
	slices.Reverse(out)
	return out
}

// Names returns every name seen so far, sorted.
func (c *NameCache) Names() []string {
	names := make([]string, 0, len(c.buckets))
	for name := range c.buckets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
