package aspect

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// outlineWidth is the stroke width of the debug outlines, in pixels.
const outlineWidth = 1

// drawOutline strokes the border of a rectangle of the given size, anchored at the current offset.
func drawOutline(ops *op.Ops, size image.Point, col color.NRGBA) {
	// Keep the stroke inside the rectangle.
	half := float32(outlineWidth) / 2
	w, h := float32(size.X)-half, float32(size.Y)-half

	var path clip.Path
	path.Begin(ops)
	path.MoveTo(f32.Pt(half, half))
	path.LineTo(f32.Pt(w, half))
	path.LineTo(f32.Pt(w, h))
	path.LineTo(f32.Pt(half, h))
	path.Close()

	defer clip.Stroke{Path: path.End(), Width: outlineWidth}.Op().Push(ops).Pop()
	paint.ColorOp{Color: col}.Add(ops)
	paint.PaintOp{}.Add(ops)
}
