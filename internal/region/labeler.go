// Package region groups skin pixels into connected regions with a single
// raster-order pass and deferred label merging.
package region

import (
	"nude-scan/internal/raster"
	"nude-scan/internal/skin"
)

// NoLabel marks a pixel that belongs to no region.
const NoLabel = -1

// Pixel is one position of the scanned image. ID is the 1-based raster index
// x + y*width + 1.
type Pixel struct {
	ID    int
	X     int
	Y     int
	Skin  bool
	Label int
}

// Labeler performs the scan. It holds the pixel arena, the provisional
// regions and the equivalence table of a single image and is not reusable
// across images.
type Labeler struct {
	classify    skin.Classifier
	width       int
	pixels      []Pixel
	provisional [][]int // label -> arena indices
	eq          *Equivalences
}

// NewLabeler returns a labeler using classify, or skin.IsSkin when nil.
func NewLabeler(classify skin.Classifier) *Labeler {
	if classify == nil {
		classify = skin.IsSkin
	}
	return &Labeler{classify: classify, eq: NewEquivalences()}
}

// Scan labels every pixel of buf, top-to-bottom and left-to-right. A skin
// pixel only looks at its causal neighbours (left, up-left, up, up-right),
// takes the label of the last skin one visited, and records a merge for every
// label change seen along the way. A skin pixel with no skin neighbour opens a
// new provisional region.
func (l *Labeler) Scan(buf *raster.Buffer) {
	w, h := buf.Width, buf.Height
	l.width = w
	l.pixels = make([]Pixel, 0, w*h)

	var neighbors [4]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := x + y*w + 1
			r, g, b := buf.RGB(x, y)
			isSkin := l.classify(r, g, b)
			l.pixels = append(l.pixels, Pixel{ID: id, X: x, Y: y, Skin: isSkin, Label: NoLabel})
			if !isSkin {
				continue
			}

			n := l.causalNeighbors(&neighbors, id, x, y)
			region := NoLabel
			for _, idx := range neighbors[:n] {
				nb := l.pixels[idx]
				if !nb.Skin {
					continue
				}
				if region != NoLabel && nb.Label != region && !l.eq.Recent(region, nb.Label) {
					l.eq.Add(region, nb.Label)
				}
				region = nb.Label
			}

			self := id - 1
			if region == NoLabel {
				region = len(l.provisional)
				l.provisional = append(l.provisional, nil)
			}
			l.pixels[self].Label = region
			l.provisional[region] = append(l.provisional[region], self)
		}
	}
}

// causalNeighbors fills dst with the arena indices of the already-visited
// neighbours of pixel id at (x, y), in the order left, up-left, up, up-right,
// skipping those outside the image. It returns how many were written.
func (l *Labeler) causalNeighbors(dst *[4]int, id, x, y int) int {
	n := 0
	if x > 0 {
		dst[n] = id - 2
		n++
	}
	if y > 0 {
		if x > 0 {
			dst[n] = id - l.width - 2
			n++
		}
		dst[n] = id - l.width - 1
		n++
		if x < l.width-1 {
			dst[n] = id - l.width
			n++
		}
	}
	return n
}

// Pixels returns the pixel arena, indexed by ID-1.
func (l *Labeler) Pixels() []Pixel { return l.pixels }

// Provisional returns, per provisional label, the arena indices of its pixels.
func (l *Labeler) Provisional() [][]int { return l.provisional }

// Equivalences returns the merge table built during the scan.
func (l *Labeler) Equivalences() *Equivalences { return l.eq }
