package shadow

import "math"

// Vector is a 2D location, velocity or force.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for a *Vector literal.
func Vec(x, y float64) *Vector {
	return &Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Mag returns the vector length.
func (v Vector) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// Limit caps the magnitude at n, keeping the direction.
func (v Vector) Limit(n float64) Vector {
	m := v.Mag()
	if m <= n || m == 0 {
		return v
	}
	return v.Scale(n / m)
}
