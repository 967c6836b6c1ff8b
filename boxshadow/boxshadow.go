// Package boxshadow parses committed box-shadow values back into typed
// shadows so non-browser surfaces can paint them.
package boxshadow

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrMalformed is returned for values that are not a box-shadow list.
var ErrMalformed = errors.New("boxshadow: malformed value")

// Shadow is one box-shadow entry. Geometry is in pixels.
type Shadow struct {
	X, Y   float64
	Blur   float64
	Spread float64
	Color  color.NRGBA
}

// Parse splits a comma-separated box-shadow value. The empty value yields no
// shadows.
func Parse(value string) ([]Shadow, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, "),")
	out := make([]Shadow, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i < len(parts)-1 {
			part += ")"
		}
		s, err := parseOne(part)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseOne(part string) (Shadow, error) {
	var s Shadow
	open := strings.IndexByte(part, '(')
	if open < 0 {
		return s, fmt.Errorf("%w: %q", ErrMalformed, part)
	}
	fields := strings.Fields(part[:open])
	if len(fields) != 5 {
		return s, fmt.Errorf("%w: %q", ErrMalformed, part)
	}
	dims := [4]*float64{&s.X, &s.Y, &s.Blur, &s.Spread}
	for i, dim := range dims {
		v, err := strconv.ParseFloat(strings.TrimSuffix(fields[i], "px"), 64)
		if err != nil {
			return s, fmt.Errorf("%w: %q: %v", ErrMalformed, fields[i], err)
		}
		*dim = v
	}
	c, err := ParseColor(fields[4] + part[open:])
	if err != nil {
		return s, err
	}
	s.Color = c
	return s, nil
}

// ParseColor parses rgb, rgba, hsl and hsla functional notation.
func ParseColor(value string) (color.NRGBA, error) {
	value = strings.TrimSpace(value)
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrMalformed, value)
	}
	fn := value[:open]
	args := strings.Split(value[open+1:len(value)-1], ",")
	nums := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(arg), "%"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", ErrMalformed, value, err)
		}
		nums[i] = v
	}

	alpha := 1.0
	switch {
	case (fn == "rgba" || fn == "hsla") && len(nums) == 4:
		alpha = nums[3]
	case (fn == "rgb" || fn == "hsl") && len(nums) == 3:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrMalformed, value)
	}

	var r, g, b uint8
	if fn[0] == 'r' {
		r, g, b = clamp8(nums[0]), clamp8(nums[1]), clamp8(nums[2])
	} else {
		r, g, b = colorful.Hsl(nums[0], nums[1]/100, nums[2]/100).Clamped().RGB255()
	}
	return color.NRGBA{R: r, G: g, B: b, A: clamp8(alpha * 255)}, nil
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// Rect returns the area an entry paints: a square Spread pixels wide centered
// on its offset, grown by half the blur radius on every side.
func (s Shadow) Rect() (x0, y0, x1, y1 float64) {
	half := s.Spread/2 + s.Blur/2
	return s.X - half, s.Y - half, s.X + half, s.Y + half
}

// Surface keeps the parsed form of the last committed value. Hosts embed it
// to receive commits and paint the result their own way.
type Surface struct {
	shadows []Shadow
	radius  string
	err     error
}

func (s *Surface) SetBoxShadow(value string) {
	s.shadows, s.err = Parse(value)
}

func (s *Surface) SetBorderRadius(value string) {
	s.radius = value
}

func (s *Surface) Clear() {
	s.shadows = nil
	s.err = nil
}

// Shadows returns the shadows parsed from the last commit.
func (s *Surface) Shadows() []Shadow { return s.shadows }

func (s *Surface) BorderRadius() string { return s.radius }

// Err returns the parse error of the last commit, if any.
func (s *Surface) Err() error { return s.err }
