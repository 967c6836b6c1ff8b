package shadow

// IDAllocator issues strictly increasing ids. Retired ids are never handed out
// again until the allocator is reset with the rest of the system.
type IDAllocator struct {
	last uint64
}

// Next increments the counter and returns the new value, starting at 1.
func (a *IDAllocator) Next() uint64 {
	a.last++
	return a.last
}

// Last returns the most recently issued id, or 0 if none was issued.
func (a *IDAllocator) Last() uint64 {
	return a.last
}

// Reset restarts the sequence.
func (a *IDAllocator) Reset() {
	a.last = 0
}
