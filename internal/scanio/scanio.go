// Package scanio loads scanned page images and converts them for
// processing. Rasterization of source PDFs happens upstream; this
// package consumes the per-page image files it produces.
package scanio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/tiff"

	"gocv.io/x/gocv"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// ListPages returns the page image files in a directory, sorted by
// filename so page order matches the source document.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages directory: %w", err)
	}

	var pages []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			pages = append(pages, filepath.Join(dir, e.Name()))
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page images found in %s", dir)
	}

	sort.Strings(pages)
	return pages, nil
}

// LoadMat reads a page image file into a BGR Mat.
func LoadMat(path string) (gocv.Mat, error) {
	file, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return MatFromImage(img), nil
}

// MatFromImage converts a Go image.Image to a BGR Mat.
func MatFromImage(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}
