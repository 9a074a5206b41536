package aspect

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"gioui.org/layout"
	"github.com/stretchr/testify/assert"
)

var alignments = []Alignment{
	{Left, Top}, {HCenter, Top}, {Right, Top},
	{Left, VCenter}, {HCenter, VCenter}, {Right, VCenter},
	{Left, Bottom}, {HCenter, Bottom}, {Right, Bottom},
	{Left, Baseline},
}

func TestFit_NeverExceedsContainer(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		container := Size{W: 0.1 + rnd.Float64()*5000, H: 0.1 + rnd.Float64()*5000}
		ratio := math.Exp(rnd.NormFloat64() * 2)
		align := alignments[rnd.Intn(len(alignments))]

		r := Fit(container, ratio, align)
		if r.W < 0 || r.W > container.W || r.H < 0 || r.H > container.H {
			t.Fatalf("fit of ratio %v into %v exceeds the container: %v", ratio, container, r)
		}
		if r.X < 0 || r.Y < 0 {
			t.Fatalf("fit of ratio %v into %v has a negative offset: %v", ratio, container, r)
		}
	}
}

func TestFit_EqualRatioFillsContainer(t *testing.T) {
	container := Size{W: 300, H: 150}
	for _, a := range alignments {
		assert.Equal(t, Rect{X: 0, Y: 0, W: 300, H: 150}, Fit(container, 2, a), a.String())
	}
}

func TestFit_WideContainer(t *testing.T) {
	assert := assert.New(t)
	container := Size{W: 400, H: 100}

	// The child is height constrained, alignment only moves it horizontally.
	cases := []struct {
		align Alignment
		x     float64
	}{
		{Alignment{H: Left}, 0},
		{Alignment{H: HCenter}, 150},
		{Alignment{H: Right}, 300},
		{Alignment{H: Right, V: Bottom}, 300},
		{Alignment{H: Left, V: Top}, 0},
	}
	for _, c := range cases {
		r := Fit(container, 1, c.align)
		assert.Equal(100.0, r.H)
		assert.Equal(100.0, r.W)
		assert.Equal(c.x, r.X, c.align.String())
		assert.Equal(0.0, r.Y, c.align.String())
	}
}

func TestFit_NarrowContainer(t *testing.T) {
	assert := assert.New(t)
	container := Size{W: 100, H: 400}

	// The child is width constrained, alignment only moves it vertically.
	cases := []struct {
		align Alignment
		y     float64
	}{
		{Alignment{V: Top}, 0},
		{Alignment{V: VCenter}, 175},
		{Alignment{V: Baseline}, 175},
		{Alignment{V: Bottom}, 350},
		{Alignment{H: Left, V: Bottom}, 350},
		{Alignment{H: Right, V: Top}, 0},
	}
	for _, c := range cases {
		r := Fit(container, 2, c.align)
		assert.Equal(100.0, r.W)
		assert.Equal(50.0, r.H)
		assert.Equal(0.0, r.X, c.align.String())
		assert.Equal(c.y, r.Y, c.align.String())
	}
}

func TestFit_DerivedRatio(t *testing.T) {
	ratio := Resolve(0, Size{W: 200, H: 100})
	assert.Equal(t, 2.0, ratio)

	r := Fit(Size{W: 100, H: 100}, ratio, Alignment{})
	assert.Equal(t, Rect{X: 0, Y: 25, W: 100, H: 50}, r)
}

func TestFit_ExplicitRatioWins(t *testing.T) {
	assert.Equal(t, 0.5, Resolve(0.5, Size{W: 200, H: 100}))
	assert.Equal(t, 2.0, Resolve(math.NaN(), Size{W: 200, H: 100}))
	assert.True(t, math.IsInf(Resolve(-1, Size{W: 200, H: 0}), 1))
}

func TestFit_Usable(t *testing.T) {
	assert := assert.New(t)

	assert.True(Usable(0.001))
	assert.False(Usable(0))
	assert.False(Usable(-2))
	assert.False(Usable(math.Inf(1)))
	assert.False(Usable(math.NaN()))
}

func TestRect_Image(t *testing.T) {
	r := Rect{X: 0.4, Y: 24.6, W: 99.2, H: 50.1}
	assert.Equal(t, image.Rect(0, 25, 100, 75), r.Image())
	assert.Equal(t, "(0.4,24.6 99.2x50.1)", r.String())
}

func TestAlignment_Parse(t *testing.T) {
	cases := []struct {
		in   string
		want Alignment
	}{
		{"center", Alignment{}},
		{"left", Alignment{H: Left}},
		{"bottom", Alignment{V: Bottom}},
		{"left-top", Alignment{H: Left, V: Top}},
		{"top,right", Alignment{H: Right, V: Top}},
		{"Center-Bottom", Alignment{V: Bottom}},
		{"right:baseline", Alignment{H: Right, V: Baseline}},
	}
	for _, c := range cases {
		a, err := ParseAlignment(c.in)
		if assert.NoError(t, err, c.in) {
			assert.Equal(t, c.want, a, c.in)
		}
	}

	for _, bad := range []string{"", "up", "left-right", "top-bottom", "left-top-center"} {
		_, err := ParseAlignment(bad)
		assert.Error(t, err, bad)
	}
}

func TestAlignment_String(t *testing.T) {
	assert.Equal(t, "center", Alignment{}.String())
	assert.Equal(t, "left-top", Alignment{H: Left, V: Top}.String())
	assert.Equal(t, "center-bottom", Alignment{V: Bottom}.String())
	assert.Equal(t, "center-baseline", Alignment{V: Baseline}.String())
}

func TestAlignment_StringRoundTrip(t *testing.T) {
	for _, h := range []HPos{HCenter, Left, Right} {
		for _, v := range []VPos{VCenter, Top, Bottom, Baseline} {
			a := Alignment{H: h, V: v}
			got, err := ParseAlignment(a.String())
			if assert.NoError(t, err, a.String()) {
				assert.Equal(t, a, got, a.String())
			}
		}
	}
}

func TestAlignment_Direction(t *testing.T) {
	for _, d := range []layout.Direction{
		layout.NW, layout.N, layout.NE, layout.E, layout.SE,
		layout.S, layout.SW, layout.W, layout.Center,
	} {
		assert.Equal(t, d, FromDirection(d).Direction(), d.String())
	}
	assert.Equal(t, layout.W, Alignment{H: Left, V: Baseline}.Direction())
}
