package shadow

import (
	"unicode"

	"go.uber.org/zap"
)

// Key is a keyboard key code as reported by a key-up event.
type Key int

const (
	KeyStepForward Key = 39 // right arrow
	KeyMenu        Key = 72 // h
	KeyPause       Key = 80 // p
	KeyReset       Key = 82 // r
	KeyStats       Key = 83 // s
)

// KeyForRune maps a typed character to its control key, or 0.
func KeyForRune(r rune) Key {
	switch unicode.ToLower(r) {
	case 'h':
		return KeyMenu
	case 'p':
		return KeyPause
	case 'r':
		return KeyReset
	case 's':
		return KeyStats
	}
	return 0
}

// HandleKey applies a keyboard control. Unknown keys are ignored.
func (s *System) HandleKey(k Key) error {
	switch k {
	case KeyStepForward:
		return s.StepForward()
	case KeyPause:
		s.TogglePause()
	case KeyReset:
		return s.Reset(false)
	case KeyStats:
		if s.overlay == nil {
			s.log.Warn("no stats overlay configured")
			return nil
		}
		s.overlay.Toggle()
	case KeyMenu:
		if w := s.FirstWorld(); w != nil {
			w.ToggleMenu()
		}
	}
	return nil
}

// PressKey queues k for the next tick. It is safe to call from any goroutine.
func (s *System) PressKey(k Key) {
	s.commands.Defer(func(sys *System) {
		if err := sys.HandleKey(k); err != nil {
			sys.log.Error("key", zap.Int("key", int(k)), zap.Error(err))
		}
	})
}
