package aspect

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/aspect/imop"
)

// ErrEmptyCanvas is returned when rendering a pane without a usable size.
var ErrEmptyCanvas = errors.New("the canvas has an empty size")

// Picture is a child backed by an image. Its preferred size is the size of the image.
type Picture struct {
	Image  image.Image
	bounds Rect
}

// NewPicture wraps img into a layout child.
func NewPicture(img image.Image) *Picture {
	return &Picture{Image: img}
}

func (p *Picture) PrefWidth() float64  { return float64(p.Image.Bounds().Dx()) }
func (p *Picture) PrefHeight() float64 { return float64(p.Image.Bounds().Dy()) }

// ResizeRelocate records the placement of the picture.
func (p *Picture) ResizeRelocate(x, y, w, h float64) {
	p.bounds = Rect{X: x, Y: y, W: w, H: h}
}

// Bounds returns the placement computed by the last layout pass.
func (p *Picture) Bounds() Rect {
	return p.bounds
}

// Block is a child with an explicit preferred size, rendered as a solid rectangle.
type Block struct {
	Width, Height float64
	Color         color.Color
	bounds        Rect
}

func (b *Block) PrefWidth() float64  { return b.Width }
func (b *Block) PrefHeight() float64 { return b.Height }

// ResizeRelocate records the placement of the block.
func (b *Block) ResizeRelocate(x, y, w, h float64) {
	b.bounds = Rect{X: x, Y: y, W: w, H: h}
}

// Bounds returns the placement computed by the last layout pass.
func (b *Block) Bounds() Rect {
	return b.bounds
}

// Renderer draws the pictures and blocks of a pane onto an image of the pane's size.
type Renderer struct {
	// Background fills the canvas. A nil color leaves it transparent.
	Background color.Color
	// BlurRadius, if positive, fills the canvas with a blurred copy of the
	// first picture scaled to cover it, hiding the letterbox bars.
	BlurRadius float64
	// Op and Blend control how the children are composited onto the canvas.
	Op    imop.Op
	Blend imop.BlendMode
	// Filter is the resampling filter used to scale pictures. Defaults to Lanczos.
	Filter *imaging.ResampleFilter
	// Faces, if set, centers the blurred background on the face found in the
	// first picture. Without a face the background is centered on the picture.
	Faces *FaceFinder
}

// Render lays out the pane and draws its children. Children other than
// *Picture, *Block and nested *Pane values are positioned but not drawn.
func (r *Renderer) Render(p *Pane) (*image.NRGBA, error) {
	w, h := p.Size()
	if !Usable(w) || !Usable(h) {
		return nil, ErrEmptyCanvas
	}
	p.Layout()

	canvas := image.NewNRGBA(image.Rect(0, 0, int(math.Round(w)), int(math.Round(h))))
	if canvas.Bounds().Empty() {
		return nil, ErrEmptyCanvas
	}
	if r.Background != nil {
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: r.Background}, image.Point{}, draw.Src)
	}
	if r.BlurRadius > 0 {
		if pic := firstPicture(p); pic != nil {
			bg := imaging.Blur(r.background(pic.Image, canvas.Bounds().Size()), r.BlurRadius)
			imop.Draw(canvas, bg, image.Point{}, imop.SrcOver, imop.Normal)
		}
	}
	r.draw(canvas, p, image.Point{})

	return canvas, nil
}

// draw composites the children of p, offset by the position of p on the canvas.
func (r *Renderer) draw(canvas *image.NRGBA, p *Pane, origin image.Point) {
	for _, c := range p.Children() {
		switch c := c.(type) {
		case *Picture:
			rect := c.Bounds().Image().Add(origin)
			if rect.Empty() {
				continue
			}
			img := imaging.Resize(c.Image, rect.Dx(), rect.Dy(), r.filter())
			imop.Draw(canvas, img, rect.Min, r.Op, r.Blend)
		case *Block:
			rect := c.Bounds().Image().Add(origin)
			if rect.Empty() || c.Color == nil {
				continue
			}
			block := imaging.New(rect.Dx(), rect.Dy(), c.Color)
			imop.Draw(canvas, block, rect.Min, r.Op, r.Blend)
		case *Pane:
			x, y := c.Position()
			r.draw(canvas, c, origin.Add(image.Pt(int(math.Round(x)), int(math.Round(y)))))
		}
	}
}

// background scales img to cover a canvas of the given size.
func (r *Renderer) background(img image.Image, size image.Point) *image.NRGBA {
	if r.Faces != nil {
		if face, ok := r.Faces.Find(img); ok {
			return cover(img, size.X, size.Y, face, r.filter())
		}
	}
	return imaging.Fill(img, size.X, size.Y, imaging.Center, r.filter())
}

func (r *Renderer) filter() imaging.ResampleFilter {
	if r.Filter != nil {
		return *r.Filter
	}
	return imaging.Lanczos
}

// firstPicture returns the first picture of the pane, looking into nested panes.
func firstPicture(p *Pane) *Picture {
	for _, c := range p.Children() {
		switch c := c.(type) {
		case *Picture:
			return c
		case *Pane:
			if pic := firstPicture(c); pic != nil {
				return pic
			}
		}
	}
	return nil
}
