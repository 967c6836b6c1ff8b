// Package demo holds sample item kinds used by the commands.
package demo

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/bitshadow/shadow"
)

// Register adds every demo kind to f.
func Register(f *shadow.Factories) {
	shadow.RegisterKind[Particle](f, "Particle")
	shadow.RegisterKind[Emitter](f, "Emitter")
	shadow.RegisterKind[Walker](f, "Walker")
	shadow.RegisterKind[Oscillator](f, "Oscillator")
}

// Setup populates the first world with an emitter, walkers and oscillators.
func Setup(walkers, oscillators int) shadow.SetupFunc {
	return func(s *shadow.System) error {
		w := s.FirstWorld()
		cx, cy := w.Width/2, w.Height/2

		if _, err := s.Add("Emitter", shadow.Options{
			Location: shadow.Vec(cx, w.Height/4),
			Props:    map[string]any{"rate": 2},
		}); err != nil {
			return err
		}
		for i := 0; i < walkers; i++ {
			if _, err := s.Add("Walker", shadow.Options{
				Location: shadow.Vec(rand.Float64()*w.Width, rand.Float64()*w.Height),
				MaxSpeed: 0.5 + rand.Float64(),
				Color:    &shadow.RGB{40, 160, 255},
			}); err != nil {
				return err
			}
		}
		for i := 0; i < oscillators; i++ {
			if _, err := s.Add("Oscillator", shadow.Options{
				Location:   shadow.Vec(cx, cy),
				Angle:      float64(i) * 2 * math.Pi / float64(max(oscillators, 1)),
				Hue:        float64(i*360) / float64(max(oscillators, 1)),
				Saturation: 1,
				Lightness:  0.5,
			}); err != nil {
				return err
			}
		}
		return nil
	}
}

// Particle falls under its world's gravity, fades out over its life and
// retires itself when it dies or leaves the world.
type Particle struct {
	shadow.Item
	Life    int
	MaxLife int
}

func (p *Particle) Init(opts shadow.Options) error {
	p.Life = 0
	p.MaxLife = 120
	if v, ok := opts.Props["life"].(int); ok && v > 0 {
		p.MaxLife = v
	}
	if p.Velocity == nil {
		p.Velocity = &shadow.Vector{}
	}
	if p.Location == nil {
		p.Location = &shadow.Vector{}
	}
	return nil
}

func (p *Particle) Step(f *shadow.Frame) {
	w := f.World(&p.Item)
	v := p.Velocity.Add(w.Gravity).Scale(1 - w.C/100)
	if p.MaxSpeed > 0 {
		v = v.Limit(p.MaxSpeed)
	}
	*p.Velocity = v
	*p.Location = p.Location.Add(v)

	p.Life++
	p.Opacity = 1 - float64(p.Life)/float64(p.MaxLife)

	loc := p.Location
	if p.Life >= p.MaxLife || loc.X < 0 || loc.Y < 0 || loc.X > w.Width || loc.Y > w.Height {
		f.System.Destroy(p)
	}
}

// Emitter adds "rate" particles per frame with a random upward velocity.
type Emitter struct {
	shadow.Item
	Rate int
}

func (e *Emitter) Init(opts shadow.Options) error {
	e.Rate = 1
	if v, ok := opts.Props["rate"].(int); ok {
		e.Rate = v
	}
	e.Opacity = 0
	return nil
}

func (e *Emitter) Step(f *shadow.Frame) {
	if e.Location == nil {
		return
	}
	for i := 0; i < e.Rate; i++ {
		angle := -math.Pi/2 + (rand.Float64()-0.5)*math.Pi/3
		speed := 0.5 + rand.Float64()
		_, err := f.System.Add("Particle", shadow.Options{
			World:    e.World(),
			Location: shadow.Vec(e.Location.X, e.Location.Y),
			Velocity: shadow.Vec(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Color:    &shadow.RGB{255, uint8(120 + rand.IntN(120)), 40},
			Scale:    shadow.Float(0.5 + rand.Float64()),
		})
		if err != nil {
			f.System.Logger().Error(err.Error())
			return
		}
	}
}

// Walker moves toward the pointer at up to MaxSpeed.
type Walker struct {
	shadow.Item
}

func (w *Walker) Init(shadow.Options) error {
	if w.Location == nil {
		w.Location = &shadow.Vector{}
	}
	return nil
}

func (w *Walker) Step(f *shadow.Frame) {
	desired := f.Input.Location.Sub(*w.Location)
	if w.MaxSpeed > 0 {
		desired = desired.Limit(w.MaxSpeed)
	}
	*w.Location = w.Location.Add(desired)
}

// Oscillator circles its starting point and cycles its hue.
type Oscillator struct {
	shadow.Item
	Origin    shadow.Vector
	Amplitude float64
	Speed     float64
}

func (o *Oscillator) Init(shadow.Options) error {
	if o.Location == nil {
		o.Location = &shadow.Vector{}
	}
	o.Origin = *o.Location
	o.Amplitude = 20
	o.Speed = 0.05
	o.Step(nil)
	return nil
}

func (o *Oscillator) Step(*shadow.Frame) {
	o.Angle += o.Speed
	o.Location.X = o.Origin.X + math.Cos(o.Angle)*o.Amplitude
	o.Location.Y = o.Origin.Y + math.Sin(o.Angle)*o.Amplitude
	o.Hue = math.Mod(o.Hue+1, 360)
}
