// Package verdict turns the surviving skin regions of an image into a
// nude / not-nude decision.
package verdict

import (
	"fmt"
	"sort"
)

// Rule identifies which check decided a Verdict.
type Rule int

const (
	RuleTooFewRegions Rule = iota + 1
	RuleLowSkinRatio
	RuleNoDominantRegion
	RuleTooManyRegions
	RuleNude
)

func (r Rule) String() string {
	switch r {
	case RuleTooFewRegions:
		return "too-few-regions"
	case RuleLowSkinRatio:
		return "low-skin-ratio"
	case RuleNoDominantRegion:
		return "no-dominant-region"
	case RuleTooManyRegions:
		return "too-many-regions"
	case RuleNude:
		return "nude"
	default:
		return "unknown"
	}
}

// MarshalText lets Rule appear by name in JSON reports.
func (r Rule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Thresholds are the empirical limits of the decision rules.
type Thresholds struct {
	MinRegions         int     `json:"min_regions"`
	MinSkinPercent     float64 `json:"min_skin_percent"`
	MinDominantPercent float64 `json:"min_dominant_percent"`
	MaxRegions         int     `json:"max_regions"`
}

// DefaultThresholds returns 3 regions, 15% skin, 45% dominance, 60 regions.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinRegions:         3,
		MinSkinPercent:     15,
		MinDominantPercent: 45,
		MaxRegions:         60,
	}
}

// Verdict is the outcome for one image.
type Verdict struct {
	Nude        bool   `json:"nude"`
	Message     string `json:"message"`
	Rule        Rule   `json:"rule"`
	Regions     int    `json:"regions"`
	SkinPixels  int    `json:"skin_pixels"`
	TotalPixels int    `json:"total_pixels"`
}

// SkinPercent returns the share of image pixels covered by kept regions.
func (v Verdict) SkinPercent() float64 {
	return percent(v.SkinPixels, v.TotalPixels)
}

// percent computes a*100/b; integral a*100 keeps exact boundaries exact.
func percent(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) * 100 / float64(b)
}

// Evaluate applies the rules in order and stops at the first that fails:
// too few regions, too little skin, no dominant region, too many regions.
// An image passing all four is nude. sizes is not modified.
func Evaluate(sizes []int, totalPixels int, t Thresholds) Verdict {
	sorted := append([]int(nil), sizes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	skin := 0
	for _, s := range sorted {
		skin += s
	}
	v := Verdict{Regions: len(sorted), SkinPixels: skin, TotalPixels: totalPixels}

	if len(sorted) < t.MinRegions {
		v.Rule = RuleTooFewRegions
		v.Message = fmt.Sprintf("Less than %d skin regions (%d)", t.MinRegions, len(sorted))
		return v
	}

	if p := percent(skin, totalPixels); p < t.MinSkinPercent {
		v.Rule = RuleLowSkinRatio
		v.Message = fmt.Sprintf("Total skin percentage lower than %g (%.2f)", t.MinSkinPercent, p)
		return v
	}

	largest := 0
	if len(sorted) > 0 {
		largest = sorted[0]
	}
	if p := percent(largest, skin); p < t.MinDominantPercent {
		v.Rule = RuleNoDominantRegion
		v.Message = fmt.Sprintf("The biggest region contains less than %g (%.2f)", t.MinDominantPercent, p)
		return v
	}

	if len(sorted) > t.MaxRegions {
		v.Rule = RuleTooManyRegions
		v.Message = fmt.Sprintf("More than %d skin regions (%d)", t.MaxRegions, len(sorted))
		return v
	}

	v.Nude = true
	v.Rule = RuleNude
	v.Message = "Nude!!"
	return v
}
