package aspect

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/esimov/aspect/utils"
	"golang.org/x/sync/errgroup"
)

// MaxWorkers sets the maximum number of concurrently running loaders.
const MaxWorkers = 20

// Load reads the images found at sources, which can be local paths or http(s) URLs.
// At most workers sources are read concurrently; a value out of the (0, MaxWorkers]
// range falls back to the number of CPUs, capped at MaxWorkers. The returned images
// keep the order of the sources. The first failure cancels the loading of the remaining sources.
func Load(ctx context.Context, sources []string, workers int) ([]image.Image, error) {
	workers = workerCount(workers)
	images := make([]image.Image, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := loadImage(ctx, src)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", src, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// workerCount bounds the requested number of loaders to (0, MaxWorkers].
func workerCount(n int) int {
	if n <= 0 || n > MaxWorkers {
		return utils.Min(runtime.NumCPU(), MaxWorkers)
	}
	return n
}

// loadImage opens and decodes a single source.
func loadImage(ctx context.Context, src string) (image.Image, error) {
	var rc io.ReadCloser
	if utils.IsValidURL(src) {
		body, err := utils.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		rc = body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("unable to open the source file: %w", err)
		}
		rc = f
	}
	defer func() {
		if err := rc.Close(); err != nil {
			log.Printf("could not close %s: %v", src, err)
		}
	}()

	return Decode(rc)
}
