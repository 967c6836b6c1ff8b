package shadow

import (
	"fmt"
	"slices"
)

// Constructor returns a fresh, unbound instance of an item kind.
type Constructor func() Thing

// Factories maps kind names to constructors. Every system starts with the
// plain "Item" kind registered.
type Factories struct {
	ctors map[string]Constructor
}

func NewFactories() *Factories {
	f := &Factories{ctors: make(map[string]Constructor)}
	RegisterKind[Item](f, "Item")
	return f
}

// Register adds or replaces the constructor for name.
func (f *Factories) Register(name string, ctor Constructor) {
	f.ctors[name] = ctor
}

// RegisterKind registers T under name, where *T embeds Item.
func RegisterKind[T any, PT interface {
	*T
	Thing
}](f *Factories, name string) {
	f.Register(name, func() Thing {
		return PT(new(T))
	})
}

func (f *Factories) Has(name string) bool {
	_, ok := f.ctors[name]
	return ok
}

// New constructs an instance of the named kind.
func (f *Factories) New(name string) (Thing, error) {
	ctor, ok := f.ctors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, name)
	}
	return ctor(), nil
}

// Names returns the registered kinds, sorted.
func (f *Factories) Names() []string {
	names := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
