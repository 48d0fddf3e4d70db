// Package mask paints detected skin regions as a black and white image.
package mask

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"nude-scan/internal/region"

	"github.com/HugoSmits86/nativewebp"
)

// Render returns an opaque w x h image with region pixels white and
// everything else black.
func Render(regions []region.Region, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	for _, r := range regions {
		for _, p := range r {
			i := img.PixOffset(p.X, p.Y)
			img.Pix[i] = 255
			img.Pix[i+1] = 255
			img.Pix[i+2] = 255
		}
	}
	return img
}

// OutputPath names the mask for src: "<stem>_Nude.webp" or
// "<stem>_Normal.webp", in dir or next to src when dir is empty.
func OutputPath(dir, src string, nude bool) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	tag := "Normal"
	if nude {
		tag = "Nude"
	}
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.webp", stem, tag))
}

// Save encodes img as lossless WebP at path, creating parent directories.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mask: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mask: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("mask: WebP encode %s: %w", path, err)
	}
	return f.Close()
}
