package renderer

import (
	"fmt"
	"math"

	"github.com/ivlev/telop/internal/telop"
)

// Easing shapes a linear progress value in [0,1].
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

// EaseInOutCubic applies smooth easing at both ends.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EasingByName resolves a configured easing name.
func EasingByName(name string) (Easing, error) {
	switch name {
	case "", "linear":
		return Linear, nil
	case "ease-in-out", "cubic":
		return EaseInOutCubic, nil
	case "ease-out":
		return EaseOutQuad, nil
	default:
		return nil, fmt.Errorf("unknown easing: %s", name)
	}
}

// Opacity returns the eased visibility of a caption frame. The fade-in and
// fade-out progress are eased separately and multiplied.
func Opacity(f telop.Frame, ease Easing) float64 {
	if !f.Active {
		return 0
	}
	if ease == nil {
		ease = Linear
	}
	in := ease(telop.Remap(f.In, 0, 1))
	out := ease(telop.Remap(1-f.Out, 0, 1))
	return telop.Remap(in*out, 0, 1)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
