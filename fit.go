package aspect

import (
	"fmt"
	"image"
	"math"
	"strings"

	"gioui.org/layout"
	"github.com/esimov/aspect/utils"
)

// HPos is the horizontal anchor of a fitted child. The zero value centers the child.
type HPos uint8

// VPos is the vertical anchor of a fitted child. The zero value centers the child.
type VPos uint8

const (
	HCenter HPos = iota
	Left
	Right
)

const (
	VCenter VPos = iota
	Top
	Bottom
	// Baseline is accepted for compatibility with text oriented hosts and is placed as VCenter.
	Baseline
)

// Alignment anchors a fitted child inside the space left over on its free axis.
// The zero value is centered on both axes.
type Alignment struct {
	H HPos
	V VPos
}

// Size holds a width and a height.
type Size struct {
	W, H float64
}

// Rect is the placement computed for a child, relative to its container.
type Rect struct {
	X, Y, W, H float64
}

// Usable reports whether v can take part in an aspect ratio computation:
// it has to be finite and strictly positive.
func Usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Resolve returns the effective aspect ratio of a child. An explicit ratio wins;
// when it is absent (not usable) the ratio is derived from the preferred size.
// The derived value is not validated, callers guard it with Usable.
func Resolve(ratio float64, pref Size) float64 {
	if Usable(ratio) {
		return ratio
	}
	return pref.W / pref.H
}

// Fit computes the largest rectangle with the given aspect ratio (width / height)
// that fits inside the container, anchored according to align.
// The computation is pure. Inputs are not validated: container sides and the ratio
// are expected to be finite and positive, see Usable.
func Fit(container Size, ratio float64, align Alignment) Rect {
	// Every fit starts from the full container, nothing is carried over between children.
	w, h := container.W, container.H

	p := container.W / container.H
	switch {
	case p > ratio:
		w = ratio * container.H
	case p < ratio:
		h = container.W / ratio
	}
	w = utils.Clamp(w, 0, container.W)
	h = utils.Clamp(h, 0, container.H)

	var x, y float64
	switch align.H {
	case Left:
		x = 0
	case Right:
		x = container.W - w
	default:
		x = (container.W - w) / 2
	}
	switch align.V {
	case Top:
		y = 0
	case Bottom:
		y = container.H - h
	default:
		y = (container.H - h) / 2
	}

	return Rect{X: x, Y: y, W: w, H: h}
}

// Max returns the bottom right corner of the rectangle.
func (r Rect) Max() (float64, float64) {
	return r.X + r.W, r.Y + r.H
}

// Image rounds the rectangle to integer pixel coordinates.
func (r Rect) Image() image.Rectangle {
	x1, y1 := r.Max()
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

func (h HPos) String() string {
	switch h {
	case HCenter:
		return "center"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("HPos(%d)", uint8(h))
	}
}

func (v VPos) String() string {
	switch v {
	case VCenter:
		return "center"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Baseline:
		return "baseline"
	default:
		return fmt.Sprintf("VPos(%d)", uint8(v))
	}
}

func (a Alignment) String() string {
	if a == (Alignment{}) {
		return "center"
	}
	return a.H.String() + "-" + a.V.String()
}

// ParseAlignment parses an alignment such as "left", "top-right", "right,bottom" or "center".
// Tokens may come in any order; the axis missing from the input stays centered.
func ParseAlignment(s string) (Alignment, error) {
	var (
		a          Alignment
		seenH      bool
		seenV      bool
		centerSeen int
	)
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == ':'
	})
	if len(fields) == 0 || len(fields) > 2 {
		return a, fmt.Errorf("invalid alignment %q", s)
	}
	for _, f := range fields {
		switch f {
		case "left":
			a.H, seenH = Left, true
		case "right":
			a.H, seenH = Right, true
		case "top":
			a.V, seenV = Top, true
		case "bottom":
			a.V, seenV = Bottom, true
		case "baseline":
			a.V, seenV = Baseline, true
		case "center", "middle":
			centerSeen++
			continue
		default:
			return Alignment{}, fmt.Errorf("invalid alignment token %q in %q", f, s)
		}
	}
	if len(fields) == 2 && centerSeen == 0 && (!seenH || !seenV) {
		return Alignment{}, fmt.Errorf("alignment %q sets the same axis twice", s)
	}
	return a, nil
}

// Direction converts the alignment to the equivalent Gio direction.
func (a Alignment) Direction() layout.Direction {
	switch a.H {
	case Left:
		switch a.V {
		case Top:
			return layout.NW
		case Bottom:
			return layout.SW
		default:
			return layout.W
		}
	case Right:
		switch a.V {
		case Top:
			return layout.NE
		case Bottom:
			return layout.SE
		default:
			return layout.E
		}
	default:
		switch a.V {
		case Top:
			return layout.N
		case Bottom:
			return layout.S
		default:
			return layout.Center
		}
	}
}

// FromDirection converts a Gio direction to an alignment.
func FromDirection(d layout.Direction) Alignment {
	switch d {
	case layout.NW:
		return Alignment{Left, Top}
	case layout.N:
		return Alignment{HCenter, Top}
	case layout.NE:
		return Alignment{Right, Top}
	case layout.E:
		return Alignment{Right, VCenter}
	case layout.SE:
		return Alignment{Right, Bottom}
	case layout.S:
		return Alignment{HCenter, Bottom}
	case layout.SW:
		return Alignment{Left, Bottom}
	case layout.W:
		return Alignment{Left, VCenter}
	default:
		return Alignment{}
	}
}
