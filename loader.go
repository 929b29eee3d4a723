package evergreen

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/webp" // register WebP decoding
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDecodes bounds LoadPhotos' decode fan-out.
const maxConcurrentDecodes = 4

// PhotoResult is the outcome of decoding one photo.
type PhotoResult struct {
	Name  string
	Image image.Image
	Err   error
}

// DecodePhoto decodes a PNG, JPEG or WebP image from r.
func DecodePhoto(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return img, nil
}

// LoadPhotos decodes every path concurrently and returns one result per
// path, in input order. A failed decode is reported in its result and does
// not stop the others; only ctx cancellation aborts pending work. The
// caller adds successful results to a PhotoWall from the update loop.
func LoadPhotos(ctx context.Context, paths []string) []PhotoResult {
	results := make([]PhotoResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)
	for i, p := range paths {
		results[i].Name = filepath.Base(p)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Image, results[i].Err = loadPhotoFile(p)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func loadPhotoFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()
	img, err := DecodePhoto(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// AddPhotos adds every successful result to w and returns the failures.
func AddPhotos(w *PhotoWall, results []PhotoResult) []PhotoResult {
	var failed []PhotoResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		w.Add(r.Name, r.Image)
	}
	return failed
}
