package imop

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Op is a Porter-Duff composition operator. The zero value is SrcOver.
type Op uint8

const (
	SrcOver Op = iota
	Copy
	DstOver
	SrcIn
	DstIn
	SrcOut
	DstOut
	SrcAtop
	DstAtop
	Xor
)

var opNames = map[Op]string{
	SrcOver: "src_over",
	Copy:    "copy",
	DstOver: "dst_over",
	SrcIn:   "src_in",
	DstIn:   "dst_in",
	SrcOut:  "src_out",
	DstOut:  "dst_out",
	SrcAtop: "src_atop",
	DstAtop: "dst_atop",
	Xor:     "xor",
}

func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// ParseOp returns the operator with the given name, e.g. "src_over".
func ParseOp(name string) (Op, error) {
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return SrcOver, fmt.Errorf("unsupported composite operation: %q", name)
}

// factors returns the Porter-Duff fractions of the source (fa) and of the
// backdrop (fb) for the source alpha as and the backdrop alpha ab.
func (op Op) factors(as, ab float64) (fa, fb float64) {
	switch op {
	case Copy:
		return 1, 0
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	default:
		return 1, 1 - as
	}
}

// Draw composites src onto dst in place, with the top left corner of src placed at at.
// Only the pixels where src overlaps dst are touched, so operators clearing the
// backdrop (i.e. SrcIn) act inside the source bounds only.
// Before compositing, the source color is blended with the backdrop using mode.
func Draw(dst *image.NRGBA, src image.Image, at image.Point, op Op, mode BlendMode) {
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(at).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	offset := sb.Min.Sub(at)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := color.NRGBAModel.Convert(src.At(x+offset.X, y+offset.Y)).(color.NRGBA)
			b := dst.NRGBAAt(x, y)
			dst.SetNRGBA(x, y, composite(s, b, op, mode))
		}
	}
}

// composite mixes a single source pixel with its backdrop.
func composite(s, b color.NRGBA, op Op, mode BlendMode) color.NRGBA {
	as, ab := norm(s.A), norm(b.A)
	fa, fb := op.factors(as, ab)

	ao := as*fa + ab*fb
	if ao <= 0 {
		return color.NRGBA{}
	}
	channel := func(cs, cb uint8) uint8 {
		csn, cbn := norm(cs), norm(cb)
		// The blended color only applies where the backdrop is present.
		csn = (1-ab)*csn + ab*mode.mix(cbn, csn)
		// Premultiplied result, divided back by the output alpha.
		co := (as*fa*csn + ab*fb*cbn) / ao
		return denorm(co)
	}
	return color.NRGBA{
		R: channel(s.R, b.R),
		G: channel(s.G, b.G),
		B: channel(s.B, b.B),
		A: denorm(ao),
	}
}

func norm(v uint8) float64 {
	return float64(v) / 0xff
}

func denorm(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}
