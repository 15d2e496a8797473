package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-kdtree-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		opts        renderOptions
		expectError bool
	}{
		{"weekend scene", renderOptions{scene: "weekend", seed: 1}, false},
		{"single scene", renderOptions{scene: "single"}, false},
		{"glass scene", renderOptions{scene: "glass"}, false},
		{"sphere grid scene", renderOptions{scene: "sphere-grid", gridSize: 4}, false},
		{"unknown scene", renderOptions{scene: "cornell"}, true},
		{"empty scene name", renderOptions{scene: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.opts)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for '%s', got %v", tt.opts.scene, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s', got %T", tt.opts.scene, s)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.opts.scene, err)
			}
			if s.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", s.CameraConfig.Width)
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 || s.SamplingConfig.MaxDepth <= 0 {
				t.Errorf("Scene sampling config should be positive, got %+v", s.SamplingConfig)
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	s, err := createScene(renderOptions{scene: "weekend", width: 64, samples: 3, depth: 7})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.CameraConfig.Width != 64 || s.SamplingConfig.SamplesPerPixel != 3 || s.SamplingConfig.MaxDepth != 7 {
		t.Errorf("Overrides not applied: camera %+v, sampling %+v", s.CameraConfig, s.SamplingConfig)
	}
	if s.CameraConfig.VFov != 20 {
		t.Errorf("Expected scene VFov kept, got %f", s.CameraConfig.VFov)
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	expected := filepath.Join("output", "glass", "render_20240309_140506.ppm")
	if got := createOutputPath("glass", now); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScenesCommand(t *testing.T) {
	stdout, _, err := execute(t, "scenes")
	if err != nil {
		t.Fatalf("scenes command failed: %v", err)
	}
	for _, id := range []string{"weekend", "single", "glass", "sphere-grid"} {
		if !strings.Contains(stdout, id) {
			t.Errorf("Expected scene %q in listing:\n%s", id, stdout)
		}
	}
}

func TestRenderCommand_File(t *testing.T) {
	dir := t.TempDir()
	ppmPath := filepath.Join(dir, "out", "single.ppm")
	previewPath := filepath.Join(dir, "preview.png")

	_, stderr, err := execute(t, "render",
		"--scene", "single", "--width", "16", "--samples", "2", "--depth", "3",
		"--workers", "2", "--output", ppmPath, "--preview", previewPath, "--preview-width", "8")
	if err != nil {
		t.Fatalf("render command failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatalf("Expected PPM output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("P3\n16 16\n255\n")) {
		t.Errorf("Unexpected PPM header: %q", data[:min(len(data), 16)])
	}

	f, err := os.Open(previewPath)
	if err != nil {
		t.Fatalf("Expected preview output: %v", err)
	}
	defer f.Close()
	preview, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Preview is not a PNG: %v", err)
	}
	if preview.Bounds().Dx() != 8 {
		t.Errorf("Expected 8 pixel wide preview, got %v", preview.Bounds())
	}

	for _, msg := range []string{"k-d tree", "Scanlines remaining", "Render saved"} {
		if !strings.Contains(stderr, msg) {
			t.Errorf("Expected log message %q in:\n%s", msg, stderr)
		}
	}
}

func TestRenderCommand_StdoutMatchesBruteForce(t *testing.T) {
	args := []string{"render", "--scene", "weekend", "--width", "24", "--samples", "1", "--depth", "4", "--workers", "3", "--seed", "5", "--output", "-"}

	tree, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	list, stderr, err := execute(t, append(args, "--brute-force")...)
	if err != nil {
		t.Fatalf("brute-force render failed: %v", err)
	}

	if !strings.HasPrefix(tree, "P3\n24 13\n255\n") {
		t.Errorf("Unexpected header: %q", tree[:min(len(tree), 16)])
	}
	if tree != list {
		t.Error("Expected identical images from the k-d tree and the brute-force list")
	}
	if !strings.Contains(stderr, "brute-force") {
		t.Errorf("Expected brute-force log message in:\n%s", stderr)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"render", "--scene", "nonexistent", "--output", "-"}},
		{"preview to stdout", []string{"render", "--scene", "single", "--output", "-", "--preview", "p.png"}},
		{"publish without settings", []string{"render", "--scene", "single", "--width", "4", "--samples", "1",
			"--output", filepath.Join(t.TempDir(), "x.ppm"), "--publish", "--env-file", filepath.Join(t.TempDir(), "missing.env")}},
		{"unexpected argument", []string{"render", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
