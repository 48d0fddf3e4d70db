// Package skin decides whether a single RGB pixel looks like human skin.
package skin

import (
	"errors"
	"fmt"
	"strings"
)

// YCbCr chroma window accepted as skin.
const (
	CbMin = 97.5
	CbMax = 142.5
	CrMin = 134.0
	CrMax = 176.0
)

// ErrUnknownMode is returned by ParseMode for unsupported classifier names.
var ErrUnknownMode = errors.New("skin: unknown classifier mode")

// Classifier reports whether an RGB pixel is skin-colored.
type Classifier func(r, g, b uint8) bool

// IsSkin is the default rule: the pixel's chroma falls inside the YCbCr window.
func IsSkin(r, g, b uint8) bool {
	_, cb, cr := YCbCr(r, g, b)
	return CbMin <= cb && cb <= CbMax && CrMin <= cr && cr <= CrMax
}

// IsSkinRGB is the explicit RGB-bounds rule for fair skin under daylight.
func IsSkinRGB(r, g, b uint8) bool {
	ir, ig, ib := int(r), int(g), int(b)
	spread := int(max(r, g, b)) - int(min(r, g, b))
	diff := ir - ig
	if diff < 0 {
		diff = -diff
	}
	return ir > 95 && ig > 40 && ig < 100 && ib > 20 &&
		spread > 15 && diff > 15 && ir > ig && ir > ib
}

// IsSkinNormRGB checks red dominance in normalized RGB.
func IsSkinNormRGB(r, g, b uint8) bool {
	nr, ng, _ := Normalized(r, g, b)
	sum := float64(r) + float64(g) + float64(b)
	sq := sum * sum
	return nr/ng > 1.185 &&
		float64(r)*float64(b)/sq > 0.107 &&
		float64(r)*float64(g)/sq > 0.112
}

// IsSkinHSV accepts reddish-orange hues with moderate saturation.
func IsSkinHSV(r, g, b uint8) bool {
	h, s, _ := HSV(r, g, b)
	return h > 0 && h < 35 && s > 0.23 && s < 0.68
}

// Mode selects how the individual predicates are combined.
type Mode string

const (
	// ModeYCbCr uses IsSkin alone.
	ModeYCbCr Mode = "ycbcr"
	// ModeStrict requires every predicate to agree.
	ModeStrict Mode = "strict"
	// ModeLoose accepts a pixel when any predicate does.
	ModeLoose Mode = "loose"
)

var predicates = []Classifier{IsSkinRGB, IsSkinNormRGB, IsSkinHSV, IsSkin}

// ParseMode maps a case-insensitive name to a Mode. The empty string means ModeYCbCr.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ModeYCbCr, nil
	case ModeYCbCr, ModeStrict, ModeLoose:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Classifier returns the predicate for m.
func (m Mode) Classifier() (Classifier, error) {
	switch m {
	case ModeYCbCr, "":
		return IsSkin, nil
	case ModeStrict:
		return func(r, g, b uint8) bool {
			for _, p := range predicates {
				if !p(r, g, b) {
					return false
				}
			}
			return true
		}, nil
	case ModeLoose:
		return func(r, g, b uint8) bool {
			for _, p := range predicates {
				if p(r, g, b) {
					return true
				}
			}
			return false
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
}
