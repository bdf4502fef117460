package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trirast/internal/imageio"
)

const triangleScene = `png 4 4 %s
position 2 -1 -1  0.5 -1  -1 0.5
color 3 1 0 0  1 0 0  1 0 0
drawArraysTriangles 0 3
`

func writeScene(t *testing.T, dir, name, output string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := strings.Replace(triangleScene, "%s", output, 1)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// expected is the 4x4 render of triangleScene.
func expected() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y, n := range []int{3, 2, 1} {
		for x := 0; x < n; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	return img
}

func TestRun(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	scenes := []string{
		writeScene(t, in, "a.txt", "a.png"),
		writeScene(t, in, "b.txt", "sub/b.png"),
		filepath.Join(in, "missing.txt"),
	}
	bad := filepath.Join(in, "bad.txt")
	os.WriteFile(bad, []byte("png x 4 bad.png\n"), 0644)
	scenes = append(scenes, bad)

	var progress bytes.Buffer
	results := Run(Config{OutputDir: out, Zoom: 1, Workers: 3, Progress: &progress}, scenes)
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}

	for i, name := range []string{"a.png", "b.png"} {
		r := results[i]
		if !r.Success || r.Triangles != 1 {
			t.Errorf("result %d = %+v", i, r)
			continue
		}
		if r.Output != filepath.Join(out, name) || r.Scene != scenes[i] {
			t.Errorf("result %d paths = %+v", i, r)
		}
		img, err := imageio.Load(r.Output)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(img.Pix, expected().Pix) {
			t.Errorf("%s pixels differ from the expected render", name)
		}
	}

	for _, r := range results[2:] {
		if r.Success || r.Error == "" || r.Output != "" {
			t.Errorf("failure result = %+v", r)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "bad.png")); !os.IsNotExist(err) {
		t.Error("failed scene must not produce an image")
	}
}

func TestRunDuplicateOutput(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	var scenes []string
	for i := 0; i < 8; i++ {
		dir := filepath.Join(in, fmt.Sprintf("s%d", i))
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
		scenes = append(scenes, writeScene(t, dir, "scene.txt", "same.png"))
	}
	scenes = append(scenes, writeScene(t, in, "other.txt", "sub/other.png"))

	results := Run(Config{OutputDir: out, Zoom: 1, Workers: 4}, scenes)
	if r := results[0]; !r.Success || r.Output != filepath.Join(out, "same.png") {
		t.Errorf("first claim = %+v", r)
	}
	for i, r := range results[1:8] {
		if r.Success || r.Output != "" || !strings.Contains(r.Error, "duplicate output") {
			t.Errorf("scene %d = %+v, want duplicate output error", i+1, r)
		}
	}
	if r := results[8]; !r.Success {
		t.Errorf("distinct output = %+v", r)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("output dir has %d entries, want 2", len(entries))
	}
}

func TestRunZoomAndFormat(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	scenes := []string{writeScene(t, in, "a.txt", "a.png")}

	results := Run(Config{OutputDir: out, Format: "webp", Zoom: 2, Workers: 1}, scenes)
	r := results[0]
	if !r.Success || r.Output != filepath.Join(out, "a.webp") {
		t.Fatalf("result = %+v", r)
	}
	img, err := imageio.Load(r.Output)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Errorf("bounds = %v, want 8x8", img.Bounds())
	}
}

func TestRunReference(t *testing.T) {
	in, out, refs := t.TempDir(), t.TempDir(), t.TempDir()
	scenes := []string{
		writeScene(t, in, "a.txt", "a.png"),
		writeScene(t, in, "b.txt", "b.png"),
		writeScene(t, in, "c.txt", "c.png"),
	}

	if err := imageio.Save(filepath.Join(refs, "a.png"), expected()); err != nil {
		t.Fatal(err)
	}
	wrong := expected()
	wrong.SetNRGBA(3, 3, color.NRGBA{0, 0, 255, 255})
	if err := imageio.Save(filepath.Join(refs, "b.png"), wrong); err != nil {
		t.Fatal(err)
	}

	results := Run(Config{OutputDir: out, Zoom: 4, ReferenceDir: refs, Workers: 2}, scenes)
	if r := results[0]; !r.Success || r.Mismatched != 0 || r.Reference != filepath.Join(refs, "a.png") {
		t.Errorf("a = %+v", r)
	}
	if r := results[1]; !r.Success || r.Mismatched != 1 {
		t.Errorf("b = %+v", r)
	}
	if r := results[2]; r.Success || !strings.Contains(r.Error, "reference") {
		t.Errorf("c = %+v, want missing reference error", r)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		cfg  Config
		name string
		want string
	}{
		{Config{}, "out.png", "out.png"},
		{Config{}, "dir/out.png", "dir/out.png"},
		{Config{OutputDir: "renders"}, "dir/out.png", filepath.Join("renders", "out.png")},
		{Config{Format: "webp"}, "out.png", "out.webp"},
		{Config{OutputDir: "r", Format: "png"}, "out.webp", filepath.Join("r", "out.png")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.cfg, tt.name); got != tt.want {
			t.Errorf("OutputPath(%+v, %q) = %q, want %q", tt.cfg, tt.name, got, tt.want)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	in := []Result{
		{Scene: "a.txt", Output: "a.png", Triangles: 2, Success: true},
		{Scene: "b.txt", Error: "scene: png: missing png directive"},
	}
	if err := WriteManifest(path, in); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != in[0] || got[1] != in[1] {
		t.Errorf("manifest = %+v", got)
	}

	if err := WriteManifest(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty manifest = %q", data)
	}
}
