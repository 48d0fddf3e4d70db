package region

// DefaultMinSize is the noise floor: regions with this many pixels or fewer
// are dropped.
const DefaultMinSize = 30

// Region is a final, connected set of skin pixels.
type Region []Pixel

// Len returns the pixel count.
func (r Region) Len() int { return len(r) }

// Resolve builds the final regions. Each equivalence class becomes one region
// (in class order) made of its members' pixels; every provisional region not
// claimed by a class then follows as its own region, in label order.
// provisional is consumed.
func Resolve(pixels []Pixel, provisional [][]int, classes [][]int) []Region {
	out := make([]Region, 0, len(classes)+len(provisional))

	for _, class := range classes {
		var merged Region
		for _, label := range class {
			merged = appendPixels(merged, pixels, provisional[label])
			provisional[label] = nil
		}
		out = append(out, merged)
	}

	for _, members := range provisional {
		if len(members) > 0 {
			out = append(out, appendPixels(nil, pixels, members))
		}
	}
	return out
}

func appendPixels(dst Region, pixels []Pixel, members []int) Region {
	for _, idx := range members {
		dst = append(dst, pixels[idx])
	}
	return dst
}

// Filter keeps the regions larger than minSize, preserving order.
func Filter(regions []Region, minSize int) []Region {
	kept := regions[:0:0]
	for _, r := range regions {
		if r.Len() > minSize {
			kept = append(kept, r)
		}
	}
	return kept
}

// Sizes returns the pixel count of each region.
func Sizes(regions []Region) []int {
	sizes := make([]int, len(regions))
	for i, r := range regions {
		sizes[i] = r.Len()
	}
	return sizes
}
