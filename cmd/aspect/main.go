package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/aspect"
	"github.com/esimov/aspect/imop"
	"github.com/esimov/aspect/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌─┐┌─┐┌┬┐
├─┤└─┐├─┘├┤ │   │
┴ ┴└─┘┴  └─┘└─┘ ┴

Aspect ratio preserving layout.
    Version: %s

Usage: aspect -width W -height H [flags] child...

A child is source[@ratio][#alignment], where source is a WxH size,
an image path, an image URL or "-" for stdin.
Examples: 16x9  photo.jpg#left-top  https://example.com/a.png@4:3

`

// Version indicates the current build version.
var Version string

// Supported output files.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

var (
	// Flags
	width       = flag.Float64("width", 0, "Container width")
	height      = flag.Float64("height", 0, "Container height")
	ratio       = flag.String("ratio", "", "Default aspect ratio of the children, e.g. 1.5 or 16:9")
	align       = flag.String("align", "", "Default alignment of the children, e.g. left-top")
	destination = flag.String("out", "", "Render the layout into this file (- for stdout)")
	background  = flag.String("bg", "", "Background color, e.g. #202020")
	blurRadius  = flag.Float64("blur", 0, "Fill the background with the blurred first picture")
	cascade     = flag.String("cc", "", "Cascade classifier used to center the blurred background on a face")
	compOp      = flag.String("op", imop.SrcOver.String(), "Composite operation")
	blendMode   = flag.String("blend", imop.Normal.String(), "Blend mode")
	filterName  = flag.String("filter", "lanczos", "Resampling filter: nearest, box, linear, catmullrom, lanczos")
	workers     = flag.Int("conc", utils.Min(runtime.NumCPU(), aspect.MaxWorkers), "Number of images to load concurrently")
)

// config holds the validated flag values.
type config struct {
	ratio    float64
	align    *aspect.Alignment
	out      string
	renderer *aspect.Renderer
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))
	utils.Colors = isTerm

	if !aspect.Usable(*width) || !aspect.Usable(*height) || flag.NArg() == 0 {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide the container width, height and at least one child!", utils.ErrorMessage))
	}

	cfg, err := parseConfig()
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid options: %v", utils.ErrorMessage), err)
	}

	specs, err := parseChildren(flag.Args())
	if err != nil {
		log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	spinner := utils.NewSpinner(os.Stderr, fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ ASPECT", utils.StatusMessage),
		utils.DecorateText("⇢ loading and arranging the children...", utils.DefaultMessage),
	), 80*time.Millisecond, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		cancel()
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	now := time.Now()
	if isTerm {
		spinner.Start()
	}
	pane, err := run(ctx, cfg, specs)
	if err != nil {
		spinner.Stop(fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ ASPECT", utils.StatusMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		))
		log.Fatalf(
			utils.DecorateText("\nError arranging the children: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	spinner.Stop(fmt.Sprintf("%s %s\n",
		utils.DecorateText("⚡ ASPECT", utils.StatusMessage),
		utils.DecorateText("✔", utils.SuccessMessage),
	))

	printPlacements(pane, specs)
	if cfg.out != "" && cfg.out != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe layout has been saved as: %s\n",
			utils.DecorateText(filepath.Base(cfg.out), utils.SuccessMessage),
		)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// parseConfig validates the flags shared by every child.
func parseConfig() (*config, error) {
	cfg := &config{
		out:      *destination,
		renderer: &aspect.Renderer{BlurRadius: *blurRadius},
	}
	if *ratio != "" {
		r, err := parseRatio(*ratio)
		if err != nil {
			return nil, err
		}
		cfg.ratio = r
	}
	if *align != "" {
		a, err := aspect.ParseAlignment(*align)
		if err != nil {
			return nil, err
		}
		cfg.align = &a
	}
	if *background != "" {
		c, err := utils.HexToRGBA(*background)
		if err != nil {
			return nil, err
		}
		cfg.renderer.Background = c
	}

	var err error
	if cfg.renderer.Op, err = imop.ParseOp(*compOp); err != nil {
		return nil, err
	}
	if cfg.renderer.Blend, err = imop.ParseBlend(*blendMode); err != nil {
		return nil, err
	}
	f, ok := filters[strings.ToLower(*filterName)]
	if !ok {
		return nil, fmt.Errorf("unsupported filter: %q", *filterName)
	}
	cfg.renderer.Filter = &f

	if *cascade != "" {
		if *blurRadius <= 0 {
			return nil, errors.New("the cascade classifier requires a positive -blur radius")
		}
		if cfg.renderer.Faces, err = aspect.LoadFaceFinder(*cascade); err != nil {
			return nil, err
		}
	}

	if cfg.out != "" && cfg.out != pipeName {
		ext := strings.ToLower(filepath.Ext(cfg.out))
		if !isValidExtension(ext, validExtensions) {
			return nil, fmt.Errorf("%v file type not supported", ext)
		}
	}
	return cfg, nil
}

// run builds the pane holding the children, lays it out and renders it if requested.
func run(ctx context.Context, cfg *config, specs []childSpec) (*aspect.Pane, error) {
	children, err := buildChildren(ctx, specs)
	if err != nil {
		return nil, err
	}

	pane := aspect.NewPane(*width, *height)
	for i, child := range children {
		pane.Add(child)

		spec := specs[i]
		if spec.ratio > 0 {
			pane.SetAspectRatio(child, spec.ratio)
		} else if cfg.ratio > 0 {
			pane.SetAspectRatio(child, cfg.ratio)
		}
		if spec.align != nil {
			pane.SetAlignment(child, *spec.align)
		} else if cfg.align != nil {
			pane.SetAlignment(child, *cfg.align)
		}
	}
	pane.Layout()

	if cfg.out == "" {
		return pane, nil
	}
	img, err := cfg.renderer.Render(pane)
	if err != nil {
		return nil, err
	}
	return pane, writeImage(cfg.out, img)
}

// buildChildren turns the child specs into layout children, loading the images concurrently.
func buildChildren(ctx context.Context, specs []childSpec) ([]aspect.Child, error) {
	var (
		children = make([]aspect.Child, len(specs))
		sources  []string
		indexes  []int
		blocks   int
	)
	for i, spec := range specs {
		switch {
		case spec.isBlock():
			children[i] = &aspect.Block{
				Width:  spec.width,
				Height: spec.height,
				Color:  palette[blocks%len(palette)],
			}
			blocks++
		case spec.isPipe():
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, errors.New("`-` should be used with a pipe for stdin")
			}
			img, err := aspect.Decode(os.Stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			children[i] = aspect.NewPicture(img)
		default:
			sources = append(sources, spec.source)
			indexes = append(indexes, i)
		}
	}

	images, err := aspect.Load(ctx, sources, *workers)
	if err != nil {
		return nil, err
	}
	for n, img := range images {
		children[indexes[n]] = aspect.NewPicture(img)
	}
	return children, nil
}

// writeImage encodes img into the destination file or stdout.
func writeImage(out string, img *image.NRGBA) error {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return aspect.Encode(os.Stdout, img, "")
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := aspect.Encode(f, img, out); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}

// printPlacements lists the rectangle computed for every child.
func printPlacements(pane *aspect.Pane, specs []childSpec) {
	w, h := pane.Size()
	fmt.Fprintf(os.Stderr, "\nContainer %s\n", utils.DecorateText(fmt.Sprintf("%gx%g", w, h), utils.StatusMessage))

	for i, c := range pane.Children() {
		var r aspect.Rect
		switch c := c.(type) {
		case *aspect.Picture:
			r = c.Bounds()
		case *aspect.Block:
			r = c.Bounds()
		}
		fmt.Fprintf(os.Stderr, "  %2d. %-32s %s\n", i+1, specs[i].source,
			utils.DecorateText(formatRect(r), utils.SuccessMessage))
	}
}

func formatRect(r aspect.Rect) string {
	return fmt.Sprintf("x=%.2f y=%.2f w=%.2f h=%.2f", r.X, r.Y, r.W, r.H)
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
