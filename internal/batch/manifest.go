package batch

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch run.
type Summary struct {
	Scanned         int     `json:"scanned"`
	Nude            int     `json:"nude"`
	Failed          int     `json:"failed"`
	MeanSkinPercent float64 `json:"mean_skin_percent"`
	StdSkinPercent  float64 `json:"std_skin_percent"`
	MaxSkinPercent  float64 `json:"max_skin_percent"`
}

// Summarize counts outcomes and computes skin-coverage statistics over the
// successfully scanned images.
func Summarize(results []Result) Summary {
	var s Summary
	var skin []float64
	for _, r := range results {
		if !r.Success {
			s.Failed++
			continue
		}
		s.Scanned++
		if r.Nude {
			s.Nude++
		}
		skin = append(skin, r.SkinPercent)
	}

	switch len(skin) {
	case 0:
	case 1:
		s.MeanSkinPercent = skin[0]
		s.MaxSkinPercent = skin[0]
	default:
		s.MeanSkinPercent, s.StdSkinPercent = stat.MeanStdDev(skin, nil)
		s.MaxSkinPercent = math.Inf(-1)
		for _, v := range skin {
			s.MaxSkinPercent = math.Max(s.MaxSkinPercent, v)
		}
	}
	return s
}

// Manifest is the JSON report written after a run.
type Manifest struct {
	Summary Summary  `json:"summary"`
	Results []Result `json:"results"`
}

// WriteManifest writes the results and their summary as indented JSON.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(Manifest{Summary: Summarize(results), Results: results}, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
