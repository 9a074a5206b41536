package aspect

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/png"
	"strings"
	"testing"

	"github.com/esimov/aspect/utils"
	"github.com/stretchr/testify/assert"
)

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colors[i%len(colors)])
			i++
		}
	}
	return img
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := colors[i%len(colors)].RGBA()
			yy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			img.Y[img.YOffset(x, y)] = yy
			img.Cb[img.COffset(x, y)] = cb
			img.Cr[img.COffset(x, y)] = cr
			i++
		}
	}
	return img
}

func TestImage_ToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9

	cases := []struct {
		name string
		img  image.Image
	}{
		{"NRGBA", makeNRGBAImage(rect, colors)},
		{"YCbCr-444", makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444)},
		{"YCbCr-420", makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420)},
		{"Gray", func() image.Image {
			g := image.NewGray(rect)
			draw.Draw(g, rect, &image.Uniform{color.Gray{Y: 0x80}}, image.Point{}, draw.Src)
			return g
		}()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := toNRGBA(c.img)
			assert.Equal(t, image.Rect(0, 0, rect.Dx(), rect.Dy()), got.Bounds())

			for y := rect.Min.Y; y < rect.Max.Y; y++ {
				for x := rect.Min.X; x < rect.Max.X; x++ {
					want := color.NRGBAModel.Convert(c.img.At(x, y)).(color.NRGBA)
					have := got.NRGBAAt(x-rect.Min.X, y-rect.Min.Y)
					if want != have {
						t.Fatalf("pixel (%d, %d): want %v, have %v", x, y, want, have)
					}
				}
			}
		})
	}

	// Images already in the target layout are returned as they are.
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, src, toNRGBA(src))
}

func TestImage_EncodeDecode(t *testing.T) {
	assert := assert.New(t)

	src := makeNRGBAImage(image.Rect(0, 0, 8, 4), palette.WebSafe)

	var buf bytes.Buffer
	assert.NoError(Encode(&buf, src, "out.png"))

	img, err := Decode(&buf)
	if assert.NoError(err) {
		assert.Equal(image.Rect(0, 0, 8, 4), img.Bounds())
	}

	buf.Reset()
	assert.NoError(Encode(&buf, src, "out.bmp"))
	img, err = Decode(&buf)
	if assert.NoError(err) {
		assert.Equal(8, img.Bounds().Dx())
	}

	// Pipes have no extension and get a jpeg.
	buf.Reset()
	assert.NoError(Encode(&buf, src, ""))
	assert.True(bytes.HasPrefix(buf.Bytes(), []byte{0xff, 0xd8}))

	err = Encode(&buf, src, "out.webp")
	assert.True(errors.Is(err, ErrUnsupportedFormat))
}

func TestImage_DecodeRejectsNonImage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, utils.ErrNotImage)
}

// encodePNG returns img as png bytes.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("could not encode the test image: %v", err)
	}
	return buf.Bytes()
}
