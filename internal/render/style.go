package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultBackground = "#ffffff"
	DefaultFill       = "#0095DD"
)

// Style holds the colours of a frame.
type Style struct {
	Background color.RGBA
	Fill       color.RGBA
}

func DefaultStyle() Style {
	st, _ := ParseStyle(DefaultBackground, DefaultFill)
	return st
}

// ParseStyle builds a Style from two hex colours such as "#0095DD".
func ParseStyle(background, fill string) (Style, error) {
	bg, err := ParseHex(background)
	if err != nil {
		return Style{}, fmt.Errorf("background: %w", err)
	}
	fg, err := ParseHex(fill)
	if err != nil {
		return Style{}, fmt.Errorf("fill: %w", err)
	}
	return Style{Background: bg, Fill: fg}, nil
}

func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
