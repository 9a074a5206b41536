package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Parse(t *testing.T) {
	assert := assert.New(t)

	m, err := ParseBlend("multiply")
	assert.NoError(err)
	assert.Equal(Multiply, m)
	assert.Equal("multiply", m.String())

	_, err = ParseBlend("blend_mode_not_supported")
	assert.Error(err)
}

func TestBlend_Modes(t *testing.T) {
	pinkFront := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orangeBack := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	cases := []struct {
		mode BlendMode
		want color.NRGBA
	}{
		{Normal, pinkFront},
		{Darken, color.NRGBA{R: 214, G: 20, B: 17, A: 255}},
		{Lighten, color.NRGBA{R: 250, G: 121, B: 65, A: 255}},
		{Multiply, color.NRGBA{R: 210, G: 9, B: 4, A: 255}},
	}
	for _, c := range cases {
		t.Run(c.mode.String(), func(t *testing.T) {
			rect := image.Rect(0, 0, 1, 1)
			src := image.NewNRGBA(rect)
			dst := image.NewNRGBA(rect)
			src.SetNRGBA(0, 0, pinkFront)
			dst.SetNRGBA(0, 0, orangeBack)

			Draw(dst, src, image.Point{}, SrcOver, c.mode)
			assert.Equal(t, c.want, dst.NRGBAAt(0, 0))
		})
	}
}

func TestBlend_TransparentBackdrop(t *testing.T) {
	// Without a backdrop the source color is kept as it is, whatever the mode.
	rect := image.Rect(0, 0, 1, 1)
	src := image.NewNRGBA(rect)
	dst := image.NewNRGBA(rect)
	src.SetNRGBA(0, 0, cyan)

	Draw(dst, src, image.Point{}, SrcOver, Multiply)
	assert.Equal(t, cyan, dst.NRGBAAt(0, 0))
}
