package aspect

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var defaultDebugColor = color.NRGBA{R: 0xff, A: 0xff}

// Box is a Gio layout which fits every child into the available space while
// keeping the child's aspect ratio. Children are laid out independently of each
// other, in order, so later children are drawn over the earlier ones.
type Box struct {
	// Debug outlines the rectangle computed for each child.
	Debug      bool
	DebugColor color.NRGBA
}

// BoxChild is a child of a Box.
type BoxChild struct {
	ratio  float64
	align  Alignment
	widget layout.Widget
}

// Fitted returns a Box child keeping the given width / height ratio.
// A ratio of zero derives the ratio from the size the widget reports
// under loose constraints; such a widget is laid out twice per frame.
func Fitted(ratio float64, align Alignment, w layout.Widget) BoxChild {
	return BoxChild{
		ratio:  ratio,
		align:  align,
		widget: w,
	}
}

// FittedImage returns a Box child drawing img, with the ratio of the image.
func FittedImage(img image.Image, align Alignment) BoxChild {
	src := paint.NewImageOp(img)
	b := img.Bounds()
	ratio := float64(b.Dx()) / float64(b.Dy())

	return Fitted(ratio, align, func(gtx C) D {
		return widget.Image{
			Src: src,
			Fit: widget.Contain,
		}.Layout(gtx)
	})
}

// Layout lays out the children in the maximum space of the constraints.
func (b Box) Layout(gtx C, children ...BoxChild) D {
	size := gtx.Constraints.Max
	for _, ch := range children {
		ratio := ch.ratio
		if !Usable(ratio) {
			ratio = b.measure(gtx, ch.widget)
		}
		r := b.rect(size, ratio, ch.align)

		trans := op.Offset(r.Min).Push(gtx.Ops)
		cgtx := gtx
		cgtx.Constraints = layout.Exact(r.Size())
		ch.widget(cgtx)
		if b.Debug {
			col := b.DebugColor
			if col == (color.NRGBA{}) {
				col = defaultDebugColor
			}
			drawOutline(gtx.Ops, r.Size(), col)
		}
		trans.Pop()
	}
	return D{Size: size}
}

// measure records the widget under loose constraints and discards the result,
// returning the ratio of the reported size.
func (b Box) measure(gtx C, w layout.Widget) float64 {
	macro := op.Record(gtx.Ops)
	cgtx := gtx
	cgtx.Constraints.Min = image.Point{}
	dims := w(cgtx)
	macro.Stop()

	return Resolve(0, Size{W: float64(dims.Size.X), H: float64(dims.Size.Y)})
}

// rect rounds the fitted rectangle to pixels. An empty container or a ratio
// that can not be used makes the child fill the container.
func (b Box) rect(size image.Point, ratio float64, align Alignment) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 || !Usable(ratio) {
		return image.Rectangle{Max: size}
	}
	r := Fit(Size{W: float64(size.X), H: float64(size.Y)}, ratio, align).Image()
	return r.Intersect(image.Rectangle{Max: size})
}
