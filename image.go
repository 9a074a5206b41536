package aspect

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/esimov/aspect/utils"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when an image can not be encoded in the requested format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode reads an image, rotating it according to its EXIF orientation tag.
// Content which is not recognized as an image is rejected with utils.ErrNotImage
// before any decoding takes place.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	if _, err := utils.SniffImage(br); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(br, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}
	return img, nil
}

// Encode writes img in the format matching the extension of name.
// An empty extension, as for pipes, encodes the image as JPEG.
func Encode(w io.Writer, img image.Image, name string) error {
	format := imaging.JPEG
	if ext := filepath.Ext(name); ext != "" {
		f, err := imaging.FormatFromExtension(ext)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		format = f
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(100))
}

// toNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if b.Min == (image.Point{}) {
		if src, ok := img.(*image.NRGBA); ok {
			return src
		}
	}
	dst := image.NewNRGBA(b.Sub(b.Min))
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			copy(dst.Pix[di:di+w*4], src.Pix[si:si+w*4])
		}
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			di := dst.PixOffset(0, y)
			for x := 0; x < w; x++ {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				copy(dst.Pix[di:di+4], []uint8{r, g, bl, 0xff})
				di += 4
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
			}
		}
	}
	return dst
}
