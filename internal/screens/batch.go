package screens

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Loader provides decoded images by path. *imaging.ImageCache implements it.
type Loader interface {
	Load(path string) (image.Image, error)
}

// BatchResult is the outcome for one image of a batch.
type BatchResult struct {
	Path   string  `json:"path"`
	Report *Report `json:"report,omitempty"`
	Err    error   `json:"-"`
}

// DetectBatch runs d over every path with at most workers images in flight
// (zero or less means one per CPU). Results are in input order.
//
// A failure on one image is recorded in its BatchResult and does not stop
// the others. Cancelling ctx stops the batch; the returned error is then
// ctx.Err() and unfinished entries carry it too.
func DetectBatch(ctx context.Context, d *Detector, loader Loader, paths []string, workers int) ([]BatchResult, error) {
	if err := d.thresholds.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]BatchResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path // per-iteration copies (go directive < 1.22)
		results[i].Path = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			img, err := loader.Load(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Report, results[i].Err = d.Detect(gctx, img)
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
