package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"trirast/internal/imageio"
	"trirast/internal/postprocess"
)

func main() {
	tolerance := flag.Int("tolerance", 0, "Per-channel difference allowed (0-255)")
	out := flag.String("out", "", "Write a diff image (.png or .webp)")
	zoom := flag.Int("zoom", 1, "Integer upscale of the diff image")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] rendered reference\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 || *tolerance < 0 || *tolerance > 255 {
		flag.Usage()
		os.Exit(2)
	}

	a, err := imageio.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b, err := imageio.Load(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := postprocess.Diff(a, b, uint8(*tolerance))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%dx%d, mismatched: %d/%d (%.2f%%), max channel delta: %d\n",
		a.Bounds().Dx(), a.Bounds().Dy(), res.Mismatched, res.Total,
		100*float64(res.Mismatched)/float64(max(res.Total, 1)), res.MaxDelta)

	if *out != "" {
		if err := imageio.Save(*out, postprocess.Zoom(res.Image, *zoom)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Diff: %s\n", *out)
	}

	if res.Mismatched > 0 {
		os.Exit(1)
	}
}
