// Package imop implements the Porter-Duff composition operators and a set of
// separable blend modes, used to mix a fitted picture with its backdrop.
// The image/draw package only provides the source and source-over operators,
// this package covers the rest.
package imop

import (
	"fmt"

	"github.com/esimov/aspect/utils"
)

// BlendMode selects how the source color is mixed with the backdrop color
// before the composition operator is applied.
type BlendMode uint8

const (
	Normal BlendMode = iota
	Darken
	Lighten
	Multiply
	Screen
	Overlay
)

var blendNames = map[BlendMode]string{
	Normal:   "normal",
	Darken:   "darken",
	Lighten:  "lighten",
	Multiply: "multiply",
	Screen:   "screen",
	Overlay:  "overlay",
}

func (m BlendMode) String() string {
	if n, ok := blendNames[m]; ok {
		return n
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

// ParseBlend returns the blend mode with the given name.
func ParseBlend(name string) (BlendMode, error) {
	for m, n := range blendNames {
		if n == name {
			return m, nil
		}
	}
	return Normal, fmt.Errorf("unsupported blend mode: %q", name)
}

// mix returns the blended value of the backdrop channel cb and the source channel cs,
// both normalized to [0, 1].
func (m BlendMode) mix(cb, cs float64) float64 {
	switch m {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	default:
		return cs
	}
}
