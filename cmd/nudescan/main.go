package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"nude-scan/internal/batch"
	"nude-scan/internal/config"
	"nude-scan/internal/imageio"

	"github.com/sirupsen/logrus"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	resize := flag.Bool("resize", false, "Reduce image size to increase speed of scanning")
	visualize := flag.Bool("visualize", false, "Write a black/white WebP of the detected skin regions")
	outputDir := flag.String("output", "", "Directory for skin masks (default: next to each image)")
	manifest := flag.String("manifest", "", "Write a JSON report of all results to this path")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	classifier := flag.String("classifier", "", "Skin classifier: ycbcr, strict or loose (default: ycbcr)")
	verbose := flag.Bool("v", false, "Verbose logging")
	jsonLog := flag.Bool("json-log", false, "Log in JSON format")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] image|dir...\n\nDetect nudity in images.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if *jsonLog {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.WithError(err).Fatal("loading config")
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Classifier: *classifier,
		OutputDir:  *outputDir,
		Manifest:   *manifest,
		Workers:    *workers,
		Resize:     *resize,
		Visualize:  *visualize,
	})

	opts, err := cfg.Detector()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	paths, err := imageio.Discover(flag.Args())
	if err != nil {
		log.Warn(err)
	}
	if len(paths) == 0 {
		log.Fatal("no images to scan")
	}

	log.WithFields(logrus.Fields{
		"images":     len(paths),
		"workers":    cfg.Workers,
		"classifier": cfg.Classifier,
		"resize":     cfg.Resize,
	}).Debug("starting scan")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		Options:   opts,
		Fit:       cfg.Resize,
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
		Visualize: cfg.Visualize,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Logger:    log,
	}, paths)

	for _, r := range results {
		if r.Success {
			fmt.Println(r.Nude, r.Inspect)
		}
	}

	s := batch.Summarize(results)
	log.WithFields(logrus.Fields{
		"scanned":   s.Scanned,
		"nude":      s.Nude,
		"failed":    s.Failed,
		"mean_skin": fmt.Sprintf("%.2f%%", s.MeanSkinPercent),
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Info("scan finished")

	// Write manifest
	if cfg.Manifest != "" {
		if err := batch.WriteManifest(cfg.Manifest, results); err != nil {
			log.WithError(err).Warn("manifest write failed")
		} else {
			log.WithField("path", cfg.Manifest).Info("manifest written")
		}
	}

	if s.Failed > 0 {
		os.Exit(1)
	}
}
