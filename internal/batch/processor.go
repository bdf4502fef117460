package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"trirast/internal/imageio"
	"trirast/internal/logging"
	"trirast/internal/postprocess"
	"trirast/internal/scene"

	"github.com/schollz/progressbar/v3"
)

// Config holds the settings shared by every scene of a batch run.
type Config struct {
	OutputDir    string // "" writes each image where its script names it
	Format       string // "png", "webp" or "" to keep the script's extension
	Zoom         int
	ReferenceDir string // "" disables comparison
	Tolerance    uint8
	Workers      int
	Progress     io.Writer // nil hides the progress bar
}

// Result holds the outcome of rendering one scene.
type Result struct {
	Scene      string `json:"scene"`
	Output     string `json:"output,omitempty"`
	Triangles  int    `json:"triangles"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Mismatched int    `json:"mismatched"`
}

// Run renders every scene using a worker pool. Each scene is rasterized on a
// single goroutine with its own buffers. Results keep the input order.
//
// Scripts are parsed and their output paths resolved before any rendering
// starts. A scene whose output path was already claimed by an earlier scene
// fails with a duplicate output error and writes nothing.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	scripts := make([]*scene.Script, total)
	workers := max(cfg.Workers, 1)

	claimed := make(map[string]string, total)
	for i, path := range scenes {
		results[i], scripts[i] = prepareScene(cfg, path)
		if scripts[i] == nil {
			continue
		}
		key := filepath.Clean(results[i].Output)
		if prev, ok := claimed[key]; ok {
			results[i] = failed(results[i], fmt.Errorf("duplicate output %s (also written by %s)", results[i].Output, prev))
			results[i].Output = ""
			scripts[i] = nil
			continue
		}
		claimed[key] = path
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		bar = progressbar.NewOptions(total, progressbar.OptionSetVisibility(false))
	}
	defer bar.Close()

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				if scripts[idx] != nil {
					results[idx] = renderScene(cfg, results[idx], scripts[idx])
				}
				bar.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	return results
}

// OutputPath returns where the image for a script naming name is written.
func OutputPath(cfg Config, name string) string {
	out := name
	if cfg.OutputDir != "" {
		out = filepath.Join(cfg.OutputDir, filepath.Base(name))
	}
	if cfg.Format != "" {
		out = imageio.WithFormat(out, imageio.Format(cfg.Format))
	}
	return out
}

func failed(res Result, err error) Result {
	res.Success = false
	res.Error = err.Error()
	logging.Logger().Debug("scene failed", "scene", res.Scene, "err", err)
	return res
}

// prepareScene parses the script at path and resolves its output path. The
// returned script is nil when parsing failed.
func prepareScene(cfg Config, path string) (Result, *scene.Script) {
	res := Result{Scene: path}
	script, err := scene.ParseFile(path)
	if err != nil {
		return failed(res, err), nil
	}
	for i := range script.Draws {
		res.Triangles += script.Draws[i].Triangles()
	}
	res.Output = OutputPath(cfg, script.Output)
	return res, script
}

func renderScene(cfg Config, res Result, script *scene.Script) Result {
	fb, err := script.Render()
	if err != nil {
		return failed(res, err)
	}
	img := fb.Image()

	if dir := filepath.Dir(res.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return failed(res, err)
		}
	}
	if err := imageio.Save(res.Output, postprocess.Zoom(img, cfg.Zoom)); err != nil {
		return failed(res, err)
	}
	logging.Logger().Info("rendered", "scene", res.Scene, "output", res.Output, "triangles", res.Triangles)

	if cfg.ReferenceDir != "" {
		res.Reference = filepath.Join(cfg.ReferenceDir, filepath.Base(script.Output))
		ref, err := imageio.Load(res.Reference)
		if err != nil {
			return failed(res, fmt.Errorf("reference: %w", err))
		}
		d, err := postprocess.Diff(img, ref, cfg.Tolerance)
		if err != nil {
			return failed(res, fmt.Errorf("reference %s: %w", res.Reference, err))
		}
		res.Mismatched = d.Mismatched
		if d.Mismatched > 0 {
			logging.Logger().Warn("reference mismatch", "scene", res.Scene, "pixels", d.Mismatched, "max_delta", d.MaxDelta)
		}
	}

	res.Success = true
	return res
}
