package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/esimov/aspect"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// palette colors the blocks, which have no content of their own.
var palette = []color.NRGBA{
	{R: 33, G: 150, B: 243, A: 255},
	{R: 233, G: 30, B: 99, A: 255},
	{R: 76, G: 175, B: 80, A: 255},
	{R: 255, G: 193, B: 7, A: 255},
	{R: 156, G: 39, B: 176, A: 255},
}

// childSpec is a parsed child argument: source[@ratio][#alignment].
type childSpec struct {
	source string
	ratio  float64
	align  *aspect.Alignment

	// width and height are set when the source is a size, e.g. 16x9.
	width, height float64
}

func (c childSpec) isBlock() bool {
	return c.width > 0 && c.height > 0
}

func (c childSpec) isPipe() bool {
	return c.source == pipeName
}

// parseChild parses a child argument. The source can be a size (WxH),
// a file path, an http(s) URL or "-" for stdin. Suffixes which do not parse as
// a ratio or an alignment are kept in the source, so names like "icon@2x.png" still work.
func parseChild(arg string) (childSpec, error) {
	var spec childSpec

	if i := strings.LastIndexByte(arg, '#'); i >= 0 {
		if a, err := aspect.ParseAlignment(arg[i+1:]); err == nil {
			spec.align = &a
			arg = arg[:i]
		}
	}
	if i := strings.LastIndexByte(arg, '@'); i >= 0 {
		if r, err := parseRatio(arg[i+1:]); err == nil {
			spec.ratio = r
			arg = arg[:i]
		}
	}
	if arg == "" {
		return spec, fmt.Errorf("missing child source")
	}
	spec.source = arg

	if w, h, ok := parseSize(arg); ok {
		spec.width, spec.height = w, h
	}
	return spec, nil
}

// parseChildren parses every child argument. Stdin can be read only once,
// so the pipe may be used by a single child.
func parseChildren(args []string) ([]childSpec, error) {
	specs := make([]childSpec, 0, len(args))
	pipes := 0
	for _, arg := range args {
		spec, err := parseChild(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid child %q: %w", arg, err)
		}
		if spec.isPipe() {
			if pipes++; pipes > 1 {
				return nil, fmt.Errorf("invalid child %q: stdin can be used by a single child", arg)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseRatio accepts a plain number (1.5) or a fraction (16:9, 16/9).
func parseRatio(s string) (float64, error) {
	var (
		r   float64
		err error
	)
	if i := strings.IndexAny(s, ":/"); i >= 0 {
		var num, den float64
		num, err = strconv.ParseFloat(s[:i], 64)
		if err == nil {
			den, err = strconv.ParseFloat(s[i+1:], 64)
		}
		r = num / den
	} else {
		r, err = strconv.ParseFloat(s, 64)
	}
	if err != nil || !aspect.Usable(r) {
		return 0, fmt.Errorf("invalid aspect ratio %q", s)
	}
	return r, nil
}

// parseSize parses a WxH size. Both sides have to be positive.
func parseSize(s string) (float64, float64, bool) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, false
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil || !aspect.Usable(w) {
		return 0, 0, false
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil || !aspect.Usable(h) {
		return 0, 0, false
	}
	return w, h, true
}
