package shadow

import "sync"

// Commands buffers mutations from outside the tick, such as input or network
// goroutines. They are applied at the top of the next tick on the scheduler's
// goroutine.
type Commands struct {
	mu       sync.Mutex
	adds     []addCommand
	destroys []Thing
	defers   []func(*System)
}

type addCommand struct {
	name string
	opts Options
}

// Defer queues fn to run against the system.
func (c *Commands) Defer(fn func(*System)) {
	c.mu.Lock()
	c.defers = append(c.defers, fn)
	c.mu.Unlock()
}

// Add queues an item creation.
func (c *Commands) Add(name string, opts Options) {
	c.mu.Lock()
	c.adds = append(c.adds, addCommand{name: name, opts: opts})
	c.mu.Unlock()
}

// Destroy queues an item destruction.
func (c *Commands) Destroy(t Thing) {
	c.mu.Lock()
	c.destroys = append(c.destroys, t)
	c.mu.Unlock()
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.adds) + len(c.destroys) + len(c.defers)
}

// flush applies destroys, then adds, then deferred functions. The queues are
// swapped out under the lock so commands queued while flushing wait for the
// next tick.
func (c *Commands) flush(s *System) error {
	c.mu.Lock()
	adds, destroys, defers := c.adds, c.destroys, c.defers
	c.adds, c.destroys, c.defers = nil, nil, nil
	c.mu.Unlock()

	for _, t := range destroys {
		s.Destroy(t)
	}

	for _, cmd := range adds {
		if _, err := s.Add(cmd.name, cmd.opts); err != nil {
			return err
		}
	}

	for _, fn := range defers {
		fn(s)
	}
	return nil
}

func (c *Commands) reset() {
	c.mu.Lock()
	c.adds, c.destroys, c.defers = nil, nil, nil
	c.mu.Unlock()
}
