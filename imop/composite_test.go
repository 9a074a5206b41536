package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	transparent = color.NRGBA{}
	cyan        = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta     = color.NRGBA{R: 233, G: 30, B: 99, A: 255}
)

func TestComp_ParseOp(t *testing.T) {
	assert := assert.New(t)

	op, err := ParseOp("dst_atop")
	assert.NoError(err)
	assert.Equal(DstAtop, op)
	assert.Equal("dst_atop", op.String())

	_, err = ParseOp("unsupported_composite_operation")
	assert.Error(err)

	var zero Op
	assert.Equal(SrcOver, zero)
}

func TestComp_Ops(t *testing.T) {
	rect := image.Rect(0, 0, 10, 10)
	source := image.NewNRGBA(rect)
	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)

	// Three representative pixels: covered by the backdrop only (top right),
	// by the source only (bottom left) and by both (center).
	cases := []struct {
		op                        Op
		topRight, bottomLeft, mid color.NRGBA
	}{
		{SrcOver, magenta, cyan, cyan},
		{Copy, transparent, cyan, cyan},
		{DstOver, magenta, cyan, magenta},
		{SrcIn, transparent, transparent, cyan},
		{DstIn, transparent, transparent, magenta},
		{SrcOut, transparent, cyan, transparent},
		{DstOut, magenta, transparent, transparent},
		{SrcAtop, magenta, transparent, cyan},
		{DstAtop, transparent, cyan, magenta},
		{Xor, magenta, cyan, transparent},
	}
	for _, c := range cases {
		t.Run(c.op.String(), func(t *testing.T) {
			backdrop := image.NewNRGBA(rect)
			draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

			Draw(backdrop, source, image.Point{}, c.op, Normal)

			assert.Equal(t, c.topRight, backdrop.NRGBAAt(9, 0))
			assert.Equal(t, c.bottomLeft, backdrop.NRGBAAt(0, 9))
			assert.Equal(t, c.mid, backdrop.NRGBAAt(5, 5))
		})
	}
}

func TestComp_DrawOffset(t *testing.T) {
	assert := assert.New(t)

	dst := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	src := image.NewNRGBA(image.Rect(2, 2, 6, 6))
	draw.Draw(src, src.Bounds(), &image.Uniform{cyan}, image.Point{}, draw.Src)

	// The source is placed by its top left corner and clipped to the destination.
	Draw(dst, src, image.Pt(6, 1), SrcOver, Normal)

	assert.Equal(transparent, dst.NRGBAAt(5, 1))
	assert.Equal(cyan, dst.NRGBAAt(6, 1))
	assert.Equal(cyan, dst.NRGBAAt(7, 4))
	assert.Equal(transparent, dst.NRGBAAt(7, 5))

	// Nothing happens outside of the destination.
	Draw(dst, src, image.Pt(20, 20), Copy, Normal)
	assert.Equal(cyan, dst.NRGBAAt(6, 1))
}
