package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrDimensions is returned for negative width or height.
	ErrDimensions = errors.New("raster: negative buffer dimensions")
	// ErrSizeMismatch is returned when the pixel slice does not hold Width*Height RGB triples.
	ErrSizeMismatch = errors.New("raster: pixel data does not match dimensions")
)

// Buffer holds an RGB image as a flat slice for cache locality.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGB interleaved, len = W*H*3
}

// NewBuffer wraps pix as a Width x Height RGB buffer. A zero-sized buffer is
// valid and holds no pixels.
func NewBuffer(w, h int, pix []uint8) (*Buffer, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, w, h)
	}
	if len(pix) != w*h*3 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrSizeMismatch, w, h, w*h*3, len(pix))
	}
	return &Buffer{Width: w, Height: h, Pix: pix}, nil
}

// Validate checks that the buffer is internally consistent.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrSizeMismatch)
	}
	_, err := NewBuffer(b.Width, b.Height, b.Pix)
	return err
}

// Len returns the number of pixels.
func (b *Buffer) Len() int { return b.Width * b.Height }

// RGB returns the channels of the pixel at (x, y).
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set writes the channels of the pixel at (x, y).
func (b *Buffer) Set(x, y int, r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// FromImage converts any image to an RGB buffer. Alpha is dropped without
// premultiplying, so a translucent pixel keeps its stored color.
func FromImage(src image.Image) *Buffer {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &Buffer{Width: w, Height: h, Pix: make([]uint8, w*h*3)}

	switch img := src.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < w; x++ {
				si, di := x*4, (y*w+x)*3
				buf.Pix[di], buf.Pix[di+1], buf.Pix[di+2] = row[si], row[si+1], row[si+2]
			}
		}
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := img.YCbCrAt(bounds.Min.X+x, bounds.Min.Y+y)
				r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				buf.Set(x, y, r, g, b)
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
				buf.Set(x, y, v, v, v)
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				buf.Set(x, y, c.R, c.G, c.B)
			}
		}
	}
	return buf
}
