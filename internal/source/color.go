package source

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses "#RGB" or "#RRGGBB" into an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
