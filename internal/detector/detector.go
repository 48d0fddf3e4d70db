// Package detector runs the full skin-region pipeline on one image and
// caches its verdict.
package detector

import (
	"fmt"

	"nude-scan/internal/raster"
	"nude-scan/internal/region"
	"nude-scan/internal/skin"
	"nude-scan/internal/verdict"
)

// Options tunes a detection pass. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Classifier    skin.Classifier
	MinRegionSize int
	Thresholds    verdict.Thresholds
}

// DefaultOptions returns the YCbCr classifier, a 30-pixel noise floor and
// the default thresholds.
func DefaultOptions() Options {
	return Options{
		Classifier:    skin.IsSkin,
		MinRegionSize: region.DefaultMinSize,
		Thresholds:    verdict.DefaultThresholds(),
	}
}

// Detector analyses a single buffer. It is not safe for concurrent use.
type Detector struct {
	buf     *raster.Buffer
	opts    Options
	regions []region.Region
	result  *verdict.Verdict
}

// New validates buf and returns a detector for it.
func New(buf *raster.Buffer, opts Options) (*Detector, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}
	if opts.Classifier == nil {
		opts.Classifier = skin.IsSkin
	}
	return &Detector{buf: buf, opts: opts}, nil
}

// Parse runs the pipeline once; later calls return the cached verdict.
func (d *Detector) Parse() verdict.Verdict {
	if d.result != nil {
		return *d.result
	}

	l := region.NewLabeler(d.opts.Classifier)
	l.Scan(d.buf)
	merged := region.Resolve(l.Pixels(), l.Provisional(), l.Equivalences().Classes())
	d.regions = region.Filter(merged, d.opts.MinRegionSize)

	v := verdict.Evaluate(region.Sizes(d.regions), d.TotalPixels(), d.opts.Thresholds)
	d.result = &v
	return v
}

// Result returns the verdict and whether Parse has run.
func (d *Detector) Result() (verdict.Verdict, bool) {
	if d.result == nil {
		return verdict.Verdict{}, false
	}
	return *d.result, true
}

// Regions returns the kept regions, in resolution order. Nil before Parse.
func (d *Detector) Regions() []region.Region { return d.regions }

func (d *Detector) Width() int       { return d.buf.Width }
func (d *Detector) Height() int      { return d.buf.Height }
func (d *Detector) TotalPixels() int { return d.buf.Len() }

// Inspect formats a one-line report: "<name> <format> <w>*<h>: result = ...".
func (d *Detector) Inspect(name, format string) string {
	v, ok := d.Result()
	result := "None"
	if ok {
		result = fmt.Sprintf("%t", v.Nude)
	}
	return fmt.Sprintf("%s %s %d*%d: result = %s message = '%s'",
		name, format, d.Width(), d.Height(), result, v.Message)
}
