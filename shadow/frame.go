package shadow

// Frame is passed to every Stepper during the step phase. It is reused
// across ticks; steppers must not retain it.
type Frame struct {
	Clock  int64
	Input  *InputState
	System *System
}

// World returns the owning world of it, falling back to the first world.
func (f *Frame) World(it *Item) *World {
	if it.world != nil {
		return it.world
	}
	return f.System.FirstWorld()
}
