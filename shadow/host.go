package shadow

import (
	"context"
	"time"
)

// FrameFunc is one scheduler tick.
type FrameFunc func() error

// FrameHost is the environment's next-frame facility. The scheduler requests
// exactly one frame per completed tick.
type FrameHost interface {
	RequestFrame(fn FrameFunc)
}

// TickerHost runs requested frames on a fixed interval.
type TickerHost struct {
	interval time.Duration
	next     FrameFunc
}

func NewTickerHost(interval time.Duration) *TickerHost {
	return &TickerHost{interval: interval}
}

func (h *TickerHost) RequestFrame(fn FrameFunc) {
	h.next = fn
}

// Run fires pending frames until none is requested, ctx is done or a frame
// returns an error.
func (h *TickerHost) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn := h.next
			if fn == nil {
				return nil
			}
			h.next = nil
			if err := fn(); err != nil {
				return err
			}
		}
	}
}

// ManualHost holds requested frames until the caller fires them.
type ManualHost struct {
	next FrameFunc

	// Requests counts RequestFrame calls.
	Requests int
}

func (h *ManualHost) RequestFrame(fn FrameFunc) {
	h.next = fn
	h.Requests++
}

func (h *ManualHost) Pending() bool {
	return h.next != nil
}

// Fire runs the pending frame. It reports false when nothing was pending.
func (h *ManualHost) Fire() (bool, error) {
	fn := h.next
	if fn == nil {
		return false, nil
	}
	h.next = nil
	return true, fn()
}

// FireN fires up to n frames and returns how many ran.
func (h *ManualHost) FireN(n int) (int, error) {
	for i := 0; i < n; i++ {
		ok, err := h.Fire()
		if err != nil {
			return i + 1, err
		}
		if !ok {
			return i, nil
		}
	}
	return n, nil
}
