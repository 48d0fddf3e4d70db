package imageio

import (
	"image"

	"golang.org/x/image/draw"
)

// FitResult reports which bounds forced a resize.
type FitResult int

const (
	FitNone   FitResult = 0
	FitWidth  FitResult = 1
	FitHeight FitResult = 2
	FitBoth   FitResult = FitWidth | FitHeight
)

// Fit shrinks img proportionally so it is at most maxW wide, then at most
// maxH tall. A bound <= 0 is ignored. Scanning cost grows with pixel count,
// so large photos are usually fitted first.
func Fit(img image.Image, maxW, maxH int) (image.Image, FitResult) {
	res := FitNone
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxW > 0 && w > maxW {
		h = int(float64(h) * float64(maxW) / float64(w))
		w = maxW
		res |= FitWidth
	}
	if maxH > 0 && h > maxH {
		w = int(float64(w) * float64(maxH) / float64(h))
		h = maxH
		res |= FitHeight
	}
	if res == FitNone {
		return img, res
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, res
}
