package skin

import colorful "github.com/lucasb-eyer/go-colorful"

// YCbCr converts 8-bit RGB to full-range YCbCr (JPEG coefficients).
func YCbCr(r, g, b uint8) (y, cb, cr float64) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	y = 0.299*fr + 0.587*fg + 0.114*fb
	cb = 128 - 0.168736*fr - 0.331364*fg + 0.5*fb
	cr = 128 + 0.5*fr - 0.418688*fg - 0.081312*fb
	return y, cb, cr
}

// Normalized returns chromaticity coordinates (each channel over the channel
// sum). Zero channels are nudged to 0.0001 so the result is always finite.
func Normalized(r, g, b uint8) (nr, ng, nb float64) {
	fr, fg, fb := nudge(r), nudge(g), nudge(b)
	sum := fr + fg + fb
	return fr / sum, fg / sum, fb / sum
}

func nudge(c uint8) float64 {
	if c == 0 {
		return 0.0001
	}
	return float64(c)
}

// HSV returns hue in degrees [0, 360), saturation as 1 - 3*min/sum and value
// as max/3. Hue of an achromatic color is 0.
func HSV(r, g, b uint8) (h, s, v float64) {
	h, _, _ = colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hsv()

	maxC := float64(max(r, g, b))
	minC := float64(min(r, g, b))
	sum := float64(r) + float64(g) + float64(b)
	if sum == 0 {
		sum = 0.0001
	}
	s = 1.0 - 3.0*(minC/sum)
	v = maxC / 3.0
	return h, s, v
}
