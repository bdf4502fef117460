package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := Config{OutputDir: "renders", Format: "webp", Zoom: 4, Tolerance: 1, Manifest: true, Workers: 2}

	tests := []struct {
		name, body string
	}{
		{"config.json", `{"output_dir":"renders","format":"webp","zoom":4,"tolerance":1,"manifest":true,"workers":2}`},
		{"config.yaml", "output_dir: renders\nformat: webp\nzoom: 4\ntolerance: 1\nmanifest: true\nworkers: 2\n"},
		{"config.yml", "output_dir: renders\nformat: webp\nzoom: 4\ntolerance: 1\nmanifest: true\nworkers: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.name, tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("Load = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected read error")
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil {
		t.Error("expected JSON parse error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "zoom: [1")); err == nil {
		t.Error("expected YAML parse error")
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{OutputDir: "from-file", Format: ".PNG", Zoom: 2}
	cfg.Resolve(Flags{OutputDir: "from-flag", Workers: 3})

	if cfg.OutputDir != "from-flag" {
		t.Errorf("OutputDir = %q, flag should win", cfg.OutputDir)
	}
	if cfg.Format != "png" {
		t.Errorf("Format = %q, want normalized png", cfg.Format)
	}
	if cfg.Zoom != 2 || cfg.Workers != 3 {
		t.Errorf("Zoom = %d, Workers = %d", cfg.Zoom, cfg.Workers)
	}

	var def Config
	def.Resolve(Flags{})
	if def.Zoom != 1 || def.Workers != runtime.NumCPU() || def.Format != "" {
		t.Errorf("defaults = %+v", def)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		cfg Config
		ok  bool
	}{
		{Config{}, true},
		{Config{Format: "webp", Tolerance: 255, Zoom: 8}, true},
		{Config{Format: "gif"}, false},
		{Config{Tolerance: 256}, false},
		{Config{Zoom: 65}, false},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%+v) = %v", tt.cfg, err)
		}
	}
}
