package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"nude-scan/internal/detector"
	"nude-scan/internal/imageio"
	"nude-scan/internal/mask"
	"nude-scan/internal/raster"

	"github.com/sirupsen/logrus"
)

// Config holds all shared settings for a batch run.
type Config struct {
	Options   detector.Options
	Fit       bool
	MaxWidth  int
	MaxHeight int
	Visualize bool
	OutputDir string
	Workers   int
	Logger    logrus.FieldLogger
}

// Result holds the outcome of scanning one image.
type Result struct {
	Path        string  `json:"path"`
	Format      string  `json:"format,omitempty"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Nude        bool    `json:"nude"`
	Message     string  `json:"message,omitempty"`
	Rule        string  `json:"rule,omitempty"`
	Regions     int     `json:"regions"`
	SkinPercent float64 `json:"skin_percent"`
	Mask        string  `json:"mask,omitempty"`
	Inspect     string  `json:"-"`
	Success     bool    `json:"success"`
	Error       string  `json:"error,omitempty"`
}

// Run scans all paths using a worker pool. Results are in input order.
// Once ctx is done no further images are started; those left get ctx's
// error as their result.
func Run(ctx context.Context, cfg Config, paths []string) []Result {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.WithFields(logrus.Fields{
						"done":  p,
						"total": total,
						"rate":  fmt.Sprintf("%.1f/s", float64(p)/elapsed),
					}).Info("scan progress")
				}
			}
		}
	}()

	// Worker pool
	pathChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processImage(cfg, paths[idx])
				if !results[idx].Success {
					log.WithField("path", paths[idx]).Warn(results[idx].Error)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
dispatch:
	for ; sent < total; sent++ {
		select {
		case <-ctx.Done():
			break dispatch
		case pathChan <- sent:
		}
	}
	close(pathChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Path: paths[i], Error: ctx.Err().Error()}
	}

	return results
}

func processImage(cfg Config, path string) Result {
	img, format, err := imageio.Load(path)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}

	if cfg.Fit {
		img, _ = imageio.Fit(img, cfg.MaxWidth, cfg.MaxHeight)
	}

	d, err := detector.New(raster.FromImage(img), cfg.Options)
	if err != nil {
		return Result{Path: path, Format: format, Error: err.Error()}
	}
	v := d.Parse()

	res := Result{
		Path:        path,
		Format:      format,
		Width:       d.Width(),
		Height:      d.Height(),
		Nude:        v.Nude,
		Message:     v.Message,
		Rule:        v.Rule.String(),
		Regions:     v.Regions,
		SkinPercent: v.SkinPercent(),
		Inspect:     d.Inspect(filepath.Base(path), format),
		Success:     true,
	}

	if cfg.Visualize {
		out := mask.OutputPath(cfg.OutputDir, path, v.Nude)
		if err := mask.Save(out, mask.Render(d.Regions(), d.Width(), d.Height())); err != nil {
			res.Success = false
			res.Error = err.Error()
			return res
		}
		res.Mask = out
	}

	return res
}
