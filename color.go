package ggplot

import (
	"fmt"
	"image/color"
	"strings"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// FromBytes creates a color from 8-bit components.
func FromBytes(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Gray creates an opaque gray with all channels set to v.
func Gray(v float64) RGBA {
	return RGB(v, v, v)
}

// Hex creates a color from a hex string, with or without a leading '#'.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA".
// Malformed input yields opaque black; use ParseHex to detect it.
func Hex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

// ParseHex parses a hex color string in the formats accepted by Hex.
func ParseHex(hex string) (RGBA, error) {
	s := strings.TrimPrefix(hex, "#")

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(s) {
	case 3: // RGB
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b) && parseHex(s[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b) && parseHex(s[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, fmt.Errorf("ggplot: invalid hex color %q", hex)
	}
	return FromBytes(uint8(r), uint8(g), uint8(b), uint8(a)), nil
}

// namedColors maps the names accepted by ParseColor.
var namedColors = map[string]RGBA{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"gray":        Gray(0.5),
	"transparent": Transparent,
}

// ParseColor parses a color name (black, white, red, green, blue, gray,
// transparent) or a hex string in the formats accepted by Hex.
func ParseColor(s string) (RGBA, error) {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return ParseHex(strings.TrimSpace(s))
}

// parseHex is a helper for hex parsing. It reports false on a non-hex digit.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Bytes converts each channel to 8 bits by clamping to [0, 1], scaling by
// 255 and truncating.
func (c RGBA) Bytes() (r, g, b, a uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)
}

// Color converts c to the alpha-premultiplied color.RGBA the canvas layer
// draws with. For opaque colors this equals Bytes.
func (c RGBA) Color() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: toByte(clamp01(c.R) * a),
		G: toByte(clamp01(c.G) * a),
		B: toByte(clamp01(c.B) * a),
		A: toByte(a),
	}
}

// RGBA implements the color.Color interface.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.Color().RGBA()
}

// Hex returns c as an "#rrggbbaa" string.
func (c RGBA) Hex() string {
	r, g, b, a := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// String implements fmt.Stringer.
func (c RGBA) String() string {
	return c.Hex()
}

// toByte scales v to 8 bits and truncates. v/255*255 is exact for every
// byte value, so FromBytes(v, ...).Bytes() returns v.
func toByte(v float64) uint8 {
	return uint8(clamp01(v) * 255)
}

// clamp01 restricts a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)

// Default plot colors.
var (
	// DefaultSeriesColor is used by Builder.AddSimple.
	DefaultSeriesColor = Red

	// DefaultBorderColor is the light gray the plot frame is cleared to.
	DefaultBorderColor = RGBA{R: 0.95, G: 0.95, B: 0.95, A: 1}

	// DefaultFrameColor outlines the data area.
	DefaultFrameColor = Black

	// DefaultBackgroundColor fills the data area.
	DefaultBackgroundColor = White
)
