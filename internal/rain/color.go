package rain

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Blend moves c toward dst by alpha (0 keeps c, 1 yields dst).
func (c Color) Blend(dst Color, alpha float64) Color {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return dst
	}
	mix := func(a, b uint8) uint8 {
		v := float64(a) + (float64(b)-float64(a))*alpha
		return uint8(v + 0.5)
	}
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B)}
}

// Palette maps each brightness tier to its display color.
type Palette [tierCount]Color

// DefaultPalette is white for the leading glyph and three greens below it.
var DefaultPalette = Palette{
	TierDim:    MustParseHex("#008855"),
	TierMedium: MustParseHex("#00cc7a"),
	TierBright: MustParseHex("#00ff9d"),
	TierLead:   MustParseHex("#ffffff"),
}

func (p Palette) For(t Tier) Color {
	if int(t) >= len(p) {
		t = TierLead
	}
	return p[t]
}
