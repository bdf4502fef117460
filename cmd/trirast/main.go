package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"trirast/internal/batch"
	"trirast/internal/config"
	"trirast/internal/logging"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml)")
	outputDir := flag.String("output", "", "Output directory (default: path named by each script)")
	format := flag.String("format", "", "Output format: png or webp (default: script's extension)")
	zoom := flag.Int("zoom", 0, "Integer nearest-neighbour upscale of the output (default: 1)")
	referenceDir := flag.String("reference", "", "Directory of reference images to compare against")
	tolerance := flag.Int("tolerance", 0, "Per-channel difference allowed when comparing")
	manifest := flag.Bool("manifest", false, "Write manifest.json next to the outputs")
	workers := flag.Int("workers", 0, "Number of scenes rendered at once (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] scene.txt...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scenes := flag.Args()
	if len(scenes) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:    *outputDir,
		ReferenceDir: *referenceDir,
		Format:       *format,
		Zoom:         *zoom,
		Tolerance:    *tolerance,
		Manifest:     *manifest,
		Workers:      *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Scenes: %d, Workers: %d\n", len(scenes), cfg.Workers)
	if cfg.ReferenceDir != "" {
		fmt.Printf("References: %s (tolerance %d)\n", cfg.ReferenceDir, cfg.Tolerance)
	}
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:    cfg.OutputDir,
		Format:       cfg.Format,
		Zoom:         cfg.Zoom,
		ReferenceDir: cfg.ReferenceDir,
		Tolerance:    uint8(cfg.Tolerance),
		Workers:      cfg.Workers,
	}
	if len(scenes) > 1 {
		batchCfg.Progress = os.Stderr
	}

	results := batch.Run(batchCfg, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs\n", elapsed.Seconds())

	// Count results
	success, failed, mismatched := 0, 0, 0
	var errors []batch.Result
	for _, r := range results {
		if !r.Success {
			failed++
			errors = append(errors, r)
			continue
		}
		success++
		fmt.Printf("  %s -> %s (%d triangles)\n", r.Scene, r.Output, r.Triangles)
		if r.Mismatched > 0 {
			mismatched++
			fmt.Printf("    %d pixels differ from %s\n", r.Mismatched, r.Reference)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(scenes))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Scene, e.Error)
		}
	}

	if cfg.Manifest {
		dir := cfg.OutputDir
		if dir == "" {
			dir = "."
		}
		manifestPath := filepath.Join(dir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 || mismatched > 0 {
		os.Exit(1)
	}
}
