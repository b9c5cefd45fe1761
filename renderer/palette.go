// Package renderer draws cell scenes to images, video and the raylib window,
// and plots run history.
package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultGradient runs deeppink, gold, seagreen.
var DefaultGradient = []string{"#ff1493", "#ffd700", "#2e8b57"}

// ErrInvalidColor is returned for a gradient stop that is not a hex colour.
var ErrInvalidColor = errors.New("invalid hex colour")

// Palette maps a relative age in [0, 1] onto a linear colour gradient.
type Palette struct {
	stops []color.RGBA
}

// NewPalette parses hex stops ("#rrggbb", "rrggbb" or "#rgb").
func NewPalette(hex []string) (Palette, error) {
	if len(hex) == 0 {
		return Palette{}, fmt.Errorf("%w: empty gradient", ErrInvalidColor)
	}
	stops := make([]color.RGBA, len(hex))
	for i, h := range hex {
		h = strings.TrimPrefix(strings.TrimSpace(h), "#")
		if !isHex(h) {
			return Palette{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex[i])
		}
		c := drawing.ColorFromHex(h)
		stops[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	return Palette{stops: stops}, nil
}

func isHex(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// At returns the gradient colour at t, clamped to [0, 1].
func (p Palette) At(t float64) color.RGBA {
	n := len(p.stops)
	switch {
	case n == 0:
		return color.RGBA{A: 255}
	case n == 1 || t <= 0:
		return p.stops[0]
	case t >= 1:
		return p.stops[n-1]
	}

	pos := t * float64(n-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := p.stops[i], p.stops[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 255,
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

// AgeColor colours age relative to the larger of floor and maxAge.
func (p Palette) AgeColor(age, maxAge, floor float64) color.RGBA {
	scale := max(floor, maxAge)
	if scale <= 0 {
		return p.At(0)
	}
	return p.At(age / scale)
}
