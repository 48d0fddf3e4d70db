package detector

import (
	"errors"
	"strings"
	"testing"

	"nude-scan/internal/raster"
	"nude-scan/internal/skin"
	"nude-scan/internal/verdict"
)

// synthBuffer returns a black w x h buffer with skin-toned rectangles
// ([x0, y0, x1, y1), exclusive max).
func synthBuffer(w, h int, rects ...[4]int) *raster.Buffer {
	buf := &raster.Buffer{Width: w, Height: h, Pix: make([]uint8, w*h*3)}
	for _, r := range rects {
		for y := r[1]; y < r[3]; y++ {
			for x := r[0]; x < r[2]; x++ {
				buf.Set(x, y, 220, 170, 140)
			}
		}
	}
	return buf
}

func mustNew(t *testing.T, buf *raster.Buffer, opts Options) *Detector {
	t.Helper()
	d, err := New(buf, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestParse_FullySkinImage(t *testing.T) {
	d := mustNew(t, synthBuffer(10, 10, [4]int{0, 0, 10, 10}), DefaultOptions())
	v := d.Parse()
	if v.Nude {
		t.Fatalf("expected not nude")
	}
	if !strings.Contains(v.Message, "Less than 3 skin regions (1)") {
		t.Fatalf("unexpected message %q", v.Message)
	}
	if len(d.Regions()) != 1 || d.Regions()[0].Len() != 100 {
		t.Fatalf("expected one 100-pixel region")
	}
}

func TestParse_SinglePixel(t *testing.T) {
	d := mustNew(t, synthBuffer(1, 1, [4]int{0, 0, 1, 1}), DefaultOptions())
	v := d.Parse()
	if v.Rule != verdict.RuleTooFewRegions || v.Regions != 0 {
		t.Fatalf("single pixel must be filtered, got %+v", v)
	}
}

func TestParse_NoSkin(t *testing.T) {
	d := mustNew(t, synthBuffer(33, 21), DefaultOptions())
	v := d.Parse()
	if v.Message != "Less than 3 skin regions (0)" {
		t.Fatalf("got %q", v.Message)
	}
	if d.TotalPixels() != 33*21 {
		t.Fatalf("total pixels %d", d.TotalPixels())
	}
}

func TestParse_ZeroSizedImage(t *testing.T) {
	buf, err := raster.NewBuffer(0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	v := mustNew(t, buf, DefaultOptions()).Parse()
	if v.Rule != verdict.RuleTooFewRegions || v.Regions != 0 {
		t.Fatalf("got %+v", v)
	}
}

func TestParse_ThresholdBoundary(t *testing.T) {
	// 40x40 = 1600 pixels; regions of 108, 66 and 66 give exactly 15% skin
	// and exactly 45% for the largest region.
	buf := synthBuffer(40, 40,
		[4]int{0, 0, 12, 9},
		[4]int{20, 0, 31, 6},
		[4]int{0, 20, 11, 26},
	)
	v := mustNew(t, buf, DefaultOptions()).Parse()
	if !v.Nude || v.Message != "Nude!!" {
		t.Fatalf("boundary values must pass, got %+v", v)
	}

	// One pixel less in the largest region drops skin below 15%.
	buf.Set(0, 0, 0, 0, 0)
	v = mustNew(t, buf, DefaultOptions()).Parse()
	if v.Rule != verdict.RuleLowSkinRatio || v.Message != "Total skin percentage lower than 15 (14.94)" {
		t.Fatalf("got %+v", v)
	}
}

func TestParse_Idempotent(t *testing.T) {
	calls := 0
	opts := DefaultOptions()
	opts.Classifier = func(r, g, b uint8) bool {
		calls++
		return skin.IsSkin(r, g, b)
	}
	d := mustNew(t, synthBuffer(20, 20, [4]int{0, 0, 8, 8}, [4]int{10, 10, 18, 18}), opts)

	if _, ok := d.Result(); ok {
		t.Fatalf("Result should be empty before Parse")
	}
	first := d.Parse()
	regions := d.Regions()
	second := d.Parse()
	if calls != 400 {
		t.Fatalf("expected exactly one scan (400 classifications), got %d", calls)
	}
	if first != second {
		t.Fatalf("cached verdict differs: %+v vs %+v", first, second)
	}
	if len(d.Regions()) != len(regions) || &d.Regions()[0][0] != &regions[0][0] {
		t.Fatalf("regions were recomputed")
	}
	if got, ok := d.Result(); !ok || got != first {
		t.Fatalf("Result mismatch")
	}
}

func TestParse_SameBufferTwiceIsIdentical(t *testing.T) {
	buf := synthBuffer(30, 30, [4]int{0, 0, 9, 9}, [4]int{10, 10, 19, 19}, [4]int{20, 0, 29, 9})
	a := mustNew(t, buf, DefaultOptions())
	b := mustNew(t, buf, DefaultOptions())
	va, vb := a.Parse(), b.Parse()
	if va != vb {
		t.Fatalf("verdicts differ: %+v vs %+v", va, vb)
	}
	ra, rb := a.Regions(), b.Regions()
	if len(ra) != len(rb) {
		t.Fatalf("region counts differ")
	}
	for i := range ra {
		for j := range ra[i] {
			if ra[i][j] != rb[i][j] {
				t.Fatalf("region %d pixel %d differs", i, j)
			}
		}
	}
}

func TestNew_RejectsBadBuffer(t *testing.T) {
	_, err := New(&raster.Buffer{Width: 4, Height: 4, Pix: make([]uint8, 10)}, DefaultOptions())
	if !errors.Is(err, raster.ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
	if _, err := New(nil, DefaultOptions()); err == nil {
		t.Fatalf("nil buffer must be rejected")
	}
}

func TestInspect(t *testing.T) {
	d := mustNew(t, synthBuffer(10, 10, [4]int{0, 0, 10, 10}), DefaultOptions())
	if got := d.Inspect("a.jpg", "jpeg"); got != "a.jpg jpeg 10*10: result = None message = ''" {
		t.Fatalf("before parse: %q", got)
	}
	d.Parse()
	want := "a.jpg jpeg 10*10: result = false message = 'Less than 3 skin regions (1)'"
	if got := d.Inspect("a.jpg", "jpeg"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParse_MinRegionSizeOption(t *testing.T) {
	opts := DefaultOptions()
	opts.MinRegionSize = 70
	d := mustNew(t, synthBuffer(20, 20, [4]int{0, 0, 8, 8}, [4]int{10, 10, 19, 19}), opts)
	d.Parse()
	if len(d.Regions()) != 1 || d.Regions()[0].Len() != 81 {
		t.Fatalf("expected only the 81-pixel region to survive")
	}
}
