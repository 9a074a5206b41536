package aspect

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/esimov/aspect/utils"
	pigo "github.com/esimov/pigo/core"
)

// ErrInvalidCascade is returned for a cascade classifier which can not be unpacked.
var ErrInvalidCascade = errors.New("invalid cascade classifier")

// FaceFinder locates the most prominent face of a picture with a pigo cascade classifier.
// The Renderer uses it to center the blurred background on a face instead of the
// middle of the picture.
type FaceFinder struct {
	// MinSize is the smallest face size, in pixels, the classifier looks for.
	MinSize int
	// ShiftFactor and ScaleFactor drive the sliding detection window.
	ShiftFactor float64
	ScaleFactor float64
	// Angle is the rotation of the detection window, between 0 and 1 (a full turn).
	Angle float64
	// IoUThreshold merges overlapping detections into a single cluster.
	IoUThreshold float64
	// MinQuality discards clusters with a lower detection score.
	MinQuality float32

	classifier *pigo.Pigo
}

// NewFaceFinder unpacks a pigo cascade classifier, e.g. the facefinder file
// shipped with pigo.
func NewFaceFinder(cascade []byte) (*FaceFinder, error) {
	if err := checkCascade(cascade); err != nil {
		return nil, err
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &FaceFinder{
		MinSize:      20,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   5.0,
		classifier:   classifier,
	}, nil
}

// LoadFaceFinder reads the cascade classifier found at path.
func LoadFaceFinder(path string) (*FaceFinder, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	return NewFaceFinder(cascade)
}

// checkCascade verifies that the tree layout declared in the cascade header
// fits into the data, since pigo indexes the packet without bound checks.
func checkCascade(b []byte) error {
	const header = 16
	if len(b) < header {
		return fmt.Errorf("%w: %d bytes", ErrInvalidCascade, len(b))
	}
	depth := binary.LittleEndian.Uint32(b[8:])
	trees := binary.LittleEndian.Uint32(b[12:])
	if depth == 0 || depth > 16 {
		return fmt.Errorf("%w: tree depth %d", ErrInvalidCascade, depth)
	}
	leaves := 1 << depth
	// Per tree: node codes, leaf predictions and one threshold.
	tree := (4*leaves - 4) + 4*leaves + 4
	if want := header + int(trees)*tree; len(b) < want {
		return fmt.Errorf("%w: %d bytes, expected %d", ErrInvalidCascade, len(b), want)
	}
	return nil
}

// Find returns the center of the best scoring face of img, in the image's coordinates.
func (f *FaceFinder) Find(img image.Image) (image.Point, bool) {
	src := toNRGBA(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	if cols == 0 || rows == 0 {
		return image.Point{}, false
	}

	params := pigo.CascadeParams{
		MinSize:     f.MinSize,
		MaxSize:     utils.Min(cols, rows),
		ShiftFactor: f.ShiftFactor,
		ScaleFactor: f.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	faces := f.classifier.RunCascade(params, f.Angle)
	faces = f.classifier.ClusterDetections(faces, f.IoUThreshold)

	var (
		best  pigo.Detection
		found bool
	)
	for _, face := range faces {
		if face.Q <= f.MinQuality {
			continue
		}
		if !found || face.Q > best.Q {
			best, found = face, true
		}
	}
	if !found {
		return image.Point{}, false
	}
	return img.Bounds().Min.Add(image.Pt(best.Col, best.Row)), true
}

// cover scales img to cover a w x h canvas and crops it around focus,
// given in the image's coordinates. The crop window stays inside the scaled image.
func cover(img image.Image, w, h int, focus image.Point, filter imaging.ResampleFilter) *image.NRGBA {
	b := img.Bounds()
	scale := math.Max(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	sw := utils.Max(w, int(math.Ceil(float64(b.Dx())*scale)))
	sh := utils.Max(h, int(math.Ceil(float64(b.Dy())*scale)))
	scaled := imaging.Resize(img, sw, sh, filter)

	fx := int(math.Round(float64(focus.X-b.Min.X) * scale))
	fy := int(math.Round(float64(focus.Y-b.Min.Y) * scale))
	x0 := utils.Clamp(fx-w/2, 0, sw-w)
	y0 := utils.Clamp(fy-h/2, 0, sh-h)

	return imaging.Crop(scaled, image.Rect(x0, y0, x0+w, y0+h))
}
