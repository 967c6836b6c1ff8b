package shadow

import (
	"maps"
	"strconv"

	"go.uber.org/zap"
)

// Kind tags the two entity variants held by the registry.
type Kind uint8

const (
	KindItem Kind = iota
	KindWorld
)

func (k Kind) String() string {
	if k == KindWorld {
		return "world"
	}
	return "item"
}

// Entity is anything stored in the registry: worlds and the items they own.
type Entity interface {
	Name() string
	ID() string
	Seq() uint64
	Kind() Kind
	// Owner returns the world an item belongs to. Worlds report false.
	Owner() (*World, bool)
	// Attr returns a named attribute, false if the entity does not define it.
	Attr(name string) (any, bool)
}

// Thing is a poolable item. User kinds embed Item and may override Reset and
// Init or implement Stepper.
type Thing interface {
	Entity
	Base() *Item
	Reset(opts Options)
	Init(opts Options) error
}

// Stepper is implemented by items that advance their state once per frame.
type Stepper interface {
	Step(frame *Frame)
}

// RGB is an 8-bit color triple.
type RGB [3]uint8

// Options carries the initial properties of an item. Nil pointers select the
// defaults: scale 1, opacity 1, color black.
type Options struct {
	World *World

	Blur    float64
	Scale   *float64
	Opacity *float64
	Color   *RGB

	Hue        float64
	Saturation float64
	Lightness  float64

	Width  float64
	Height float64

	Location *Vector
	Velocity *Vector
	Angle    float64
	MinSpeed float64
	MaxSpeed float64

	Props map[string]any
}

// Float returns a pointer to v, for the optional numeric options.
func Float(v float64) *float64 {
	return &v
}

// Item is the base of every drawable entity.
type Item struct {
	name  string
	id    string
	seq   uint64
	world *World
	log   *zap.Logger

	Width      float64
	Height     float64
	Scale      float64
	Opacity    float64
	Blur       float64
	Color      RGB
	Hue        float64
	Saturation float64
	Lightness  float64
	Location   *Vector
	Velocity   *Vector
	Angle      float64
	MinSpeed   float64
	MaxSpeed   float64
	Props      map[string]any
}

func (it *Item) bind(name string, seq uint64, world *World, log *zap.Logger) {
	it.name = name
	it.seq = seq
	it.id = name + strconv.FormatUint(seq, 10)
	it.world = world
	it.log = log
}

func (it *Item) Name() string { return it.name }
func (it *Item) ID() string   { return it.id }
func (it *Item) Seq() uint64  { return it.seq }
func (it *Item) Kind() Kind   { return KindItem }
func (it *Item) Base() *Item  { return it }

// World returns the owning world.
func (it *Item) World() *World { return it.world }

func (it *Item) Owner() (*World, bool) {
	return it.world, it.world != nil
}

// Drawable reports whether the item contributes a shadow to its world's buffer.
// Items without a location or with zero opacity are skipped.
func (it *Item) Drawable() bool {
	return it.world != nil && it.Location != nil && it.Opacity > 0
}

// Reset applies opts onto the item. Every field is overwritten so a recycled
// item carries nothing over from its previous life except its identity.
func (it *Item) Reset(opts Options) {
	if opts.World != nil {
		it.world = opts.World
	}

	it.Blur = opts.Blur
	it.Scale = 1
	if opts.Scale != nil {
		it.Scale = *opts.Scale
	}
	it.Opacity = 1
	if opts.Opacity != nil {
		it.Opacity = *opts.Opacity
	}
	it.Color = RGB{}
	if opts.Color != nil {
		it.Color = *opts.Color
	}

	it.Hue = opts.Hue
	it.Saturation = opts.Saturation
	it.Lightness = opts.Lightness
	it.Width = opts.Width
	it.Height = opts.Height
	it.Angle = opts.Angle
	it.MinSpeed = opts.MinSpeed
	it.MaxSpeed = opts.MaxSpeed

	it.Location = copyVector(opts.Location)
	it.Velocity = copyVector(opts.Velocity)
	it.Props = maps.Clone(opts.Props)
}

// Init is the setup hook for user kinds.
func (it *Item) Init(Options) error {
	if it.log != nil {
		it.log.Debug("init is not implemented", zap.String("id", it.id))
	}
	return nil
}

func (it *Item) Attr(name string) (any, bool) {
	switch name {
	case "id":
		return it.id, true
	case "name":
		return it.name, true
	case "width":
		return it.Width, true
	case "height":
		return it.Height, true
	case "scale":
		return it.Scale, true
	case "opacity":
		return it.Opacity, true
	case "blur":
		return it.Blur, true
	case "color":
		return it.Color, true
	case "hue":
		return it.Hue, true
	case "saturation":
		return it.Saturation, true
	case "lightness":
		return it.Lightness, true
	case "angle":
		return it.Angle, true
	case "minSpeed":
		return it.MinSpeed, true
	case "maxSpeed":
		return it.MaxSpeed, true
	case "location":
		if it.Location == nil {
			return nil, false
		}
		return *it.Location, true
	case "velocity":
		if it.Velocity == nil {
			return nil, false
		}
		return *it.Velocity, true
	}
	v, ok := it.Props[name]
	return v, ok
}

func copyVector(v *Vector) *Vector {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
