package shadow_test

import (
	"errors"
	"time"

	"github.com/plus3/bitshadow/shadow"
)

// Dot counts its steps.
type Dot struct {
	shadow.Item
	Steps int
}

func (d *Dot) Step(*shadow.Frame) {
	d.Steps++
}

// Mayfly logs each visit and destroys itself when its "die" prop is set.
type Mayfly struct {
	shadow.Item
}

func (m *Mayfly) Step(f *shadow.Frame) {
	if log, ok := m.Props["log"].(*[]string); ok {
		*log = append(*log, m.ID())
	}
	if die, _ := m.Props["die"].(bool); die {
		f.System.Destroy(m)
	}
}

var errBroken = errors.New("broken")

// Broken always fails to initialize.
type Broken struct {
	shadow.Item
}

func (b *Broken) Init(shadow.Options) error {
	return errBroken
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type countingOverlay struct {
	toggles int
}

func (o *countingOverlay) Toggle() {
	o.toggles++
}

func newTestSystem(opts ...shadow.Option) (*shadow.System, *shadow.ManualHost) {
	host := &shadow.ManualHost{}
	sys := shadow.NewSystem(append([]shadow.Option{shadow.WithHost(host)}, opts...)...)
	shadow.RegisterKind[Dot](sys.Factories(), "Dot")
	shadow.RegisterKind[Mayfly](sys.Factories(), "Mayfly")
	shadow.RegisterKind[Broken](sys.Factories(), "Broken")
	return sys, host
}
