package shadow

import "errors"

var (
	// ErrInvalidWorld is returned when an item is created without a world registered in the system.
	ErrInvalidWorld = errors.New("shadow: a valid world is required for a new item")
	// ErrUnsupportedColorMode is returned by the draw phase for worlds whose color mode is neither rgba nor hsla.
	ErrUnsupportedColorMode = errors.New("shadow: color mode not supported")
	// ErrUnsupportedPlatformFeature is returned by Init when a required rendering capability is missing.
	ErrUnsupportedPlatformFeature = errors.New("shadow: required platform feature not supported")
	// ErrUnknownEntityKind is returned when no constructor is registered for a name.
	ErrUnknownEntityKind = errors.New("shadow: unknown entity kind")
)
