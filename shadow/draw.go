package shadow

import (
	"fmt"
	"strconv"
)

// Features describes what the presentation surface can render.
type Features struct {
	BoxShadow bool
	RGBA      bool
	HSLA      bool
}

// DefaultFeatures assumes a surface with full box-shadow and alpha support.
var DefaultFeatures = Features{BoxShadow: true, RGBA: true, HSLA: true}

// formatNumber prints v in its shortest round-trip form: 8, 0.5, 12.25.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func appendNumber(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

// appendGeometry writes "<x>px <y>px <blur>px <spread>px " for it.
func appendGeometry(dst []byte, it *Item, res float64) []byte {
	dst = appendNumber(dst, it.Location.X*res)
	dst = append(dst, "px "...)
	dst = appendNumber(dst, it.Location.Y*res)
	dst = append(dst, "px "...)
	dst = appendNumber(dst, it.Blur)
	dst = append(dst, "px "...)
	dst = appendNumber(dst, res*it.Scale)
	dst = append(dst, "px "...)
	return dst
}

// AppendRGBA appends the rgba shadow fragment for it, including the trailing
// separator. Without alpha support the fragment degrades to rgb.
func AppendRGBA(dst []byte, it *Item, f Features) []byte {
	dst = appendGeometry(dst, it, it.world.Resolution)
	if f.RGBA {
		dst = append(dst, "rgba("...)
	} else {
		dst = append(dst, "rgb("...)
	}
	for i, ch := range it.Color {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendUint(dst, uint64(ch), 10)
	}
	if f.RGBA {
		dst = append(dst, ", "...)
		dst = appendNumber(dst, it.Opacity)
	}
	return append(dst, "),"...)
}

// AppendHSLA appends the hsla shadow fragment for it, degrading to hsl.
func AppendHSLA(dst []byte, it *Item, f Features) []byte {
	dst = appendGeometry(dst, it, it.world.Resolution)
	if f.HSLA {
		dst = append(dst, "hsla("...)
	} else {
		dst = append(dst, "hsl("...)
	}
	dst = appendNumber(dst, it.Hue)
	dst = append(dst, ',')
	dst = appendNumber(dst, it.Saturation*100)
	dst = append(dst, "%,"...)
	dst = appendNumber(dst, it.Lightness*100)
	dst = append(dst, '%')
	if f.HSLA {
		dst = append(dst, ", "...)
		dst = appendNumber(dst, it.Opacity)
	}
	return append(dst, "),"...)
}

// AppendShadow serializes it according to its world's color mode.
func AppendShadow(dst []byte, it *Item, f Features) ([]byte, error) {
	switch mode := it.world.ColorMode; mode {
	case ColorModeRGBA:
		return AppendRGBA(dst, it, f), nil
	case ColorModeHSLA:
		return AppendHSLA(dst, it, f), nil
	default:
		return dst, fmt.Errorf("%s in %s: %w %q", it.id, it.world.id, ErrUnsupportedColorMode, mode)
	}
}
