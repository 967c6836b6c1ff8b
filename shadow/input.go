package shadow

// InputState is the shared pointer state read by steppers. Velocity is the
// last location minus the current one.
type InputState struct {
	Location     Vector
	LastLocation Vector
	Velocity     Vector
}

// Reset zeroes the pointer state.
func (in *InputState) Reset() {
	*in = InputState{}
}

func (in *InputState) move(x, y float64) {
	in.LastLocation = in.Location
	in.Location = Vector{X: x, Y: y}
	in.Velocity = in.LastLocation.Sub(in.Location)
}

// RecordPointer maps window coordinates to the first world's size and updates
// the pointer state.
func (s *System) RecordPointer(x, y float64) {
	w := s.FirstWorld()
	vw, vh := s.viewport.Size()
	if w == nil || vw <= 0 || vh <= 0 {
		s.input.move(x, y)
		return
	}
	s.input.move(x*(w.Width/vw), y*(w.Height/vh))
}

// RecordTouch updates the pointer state from a touch point, unscaled.
func (s *System) RecordTouch(x, y float64) {
	s.input.move(x, y)
}

// RecordMotion writes device acceleration into every world's gravity.
// Orientation is the screen rotation in degrees: 0 is portrait, -90 and 90
// are the two landscape rotations.
func (s *System) RecordMotion(ax, ay float64, orientation int) {
	var g Vector
	switch orientation {
	case 0:
		g = Vector{X: ax, Y: -ay}
	case -90:
		g = Vector{X: ay, Y: ax}
	default:
		g = Vector{X: -ay, Y: -ax}
	}
	for _, w := range s.worlds {
		w.Gravity = g
	}
}
