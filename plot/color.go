package plot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	BackgroundColor = color.NRGBA{R: 0x07, G: 0x10, B: 0x22, A: 0xff} //#071022
	GridColor       = color.NRGBA{R: 0x0f, G: 0x33, B: 0x50, A: 0xff} //#0f3350
	LabelColor      = color.NRGBA{R: 0x9f, G: 0xb6, B: 0xd6, A: 0xff} //#9fb6d6
	TopLineColor    = color.NRGBA{R: 0x4f, G: 0xd1, B: 0xc5, A: 0xff} //#4fd1c5
	BottomLineColor = color.NRGBA{R: 0xf6, G: 0xad, B: 0x55, A: 0xff} //#f6ad55
)

// ParseColor parses a CSS-style hex color: #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// ColorOr parses s, returning fallback if s is not a valid color.
func ColorOr(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
