package cmd

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/log"
	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
)

// captureLog redirects the log sink for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetSink(&buf)
	log.SetLevel(log.Info)
	t.Cleanup(func() {
		log.SetSink(os.Stdout)
		log.SetLevel(log.Notice)
	})
	return &buf
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("1,0.5,0.25")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v != (geom.Vec3{1, 0.5, 0.25}) {
		t.Errorf("Expected {1 0.5 0.25}, got %v", v)
	}

	if _, err := parseVec3("1,2"); err == nil {
		t.Error("Expected error for two components, got none")
	}
	if _, err := parseVec3("a,b,c"); err == nil {
		t.Error("Expected error for non-numeric components, got none")
	}
}

func TestGradedPath(t *testing.T) {
	if got := gradedPath("shot.png"); got != "shot_graded.png" {
		t.Errorf("Expected shot_graded.png, got %s", got)
	}
	if got := gradedPath("shot"); got != "shot_graded.png" {
		t.Errorf("Expected shot_graded.png, got %s", got)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	path := defaultOutputPath("cornell", "render")
	if filepath.Dir(path) != filepath.Join("output", "cornell") {
		t.Errorf("Expected path under output/cornell, got %s", path)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "render_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("Expected render_<timestamp>.png, got %s", base)
	}
}

func TestSaveLoadPNG_RoundTrip(t *testing.T) {
	img := color.NewImage(4, 2)
	img.Set(1, 0, geom.Vec4{0.25, 0.5, 0.75, 1})
	img.Set(3, 1, geom.Vec4{1, 0, 0, 1})

	// nested path exercises directory creation
	path := filepath.Join(t.TempDir(), "nested", "round.png")
	if err := savePNG(path, img.RGBA()); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	loaded, err := loadPNG(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if loaded.Width != img.Width || loaded.Height != img.Height {
		t.Fatalf("Expected %dx%d, got %dx%d", img.Width, img.Height, loaded.Width, loaded.Height)
	}
	for i, px := range loaded.Pixels {
		for c := 0; c < 4; c++ {
			diff := float64(px[c] - img.Pixels[i][c])
			if diff < -0.01 || diff > 0.01 {
				t.Errorf("Expected pixel %d near %v, got %v", i, img.Pixels[i], px)
			}
		}
	}
}

func TestLoadPNG_MissingFile(t *testing.T) {
	if _, err := loadPNG(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file, got none")
	}
}

func TestLogProgress_Throttles(t *testing.T) {
	buf := captureLog(t)

	progress := logProgress()
	for s := 0; s <= 100; s++ {
		progress("render sample", s, 100)
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 11 {
		t.Errorf("Expected 11 progress lines, got %d\n%s", lines, buf.String())
	}
}

func TestScenes_ListsPresets(t *testing.T) {
	buf := captureLog(t)

	set := flag.NewFlagSet("test", 0)
	if err := Scenes(cli.NewContext(nil, set, nil)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("Expected listing to mention %q, got\n%s", name, buf.String())
		}
	}
}

func renderFlagSet(out string) *flag.FlagSet {
	set := flag.NewFlagSet("test", 0)
	set.String("scene", "cornell", "")
	set.Int("resolution", 16, "")
	set.Int("samples", 1, "")
	set.Int("bounces", 2, "")
	set.String("shader", "eyelight", "")
	set.Int("camera", 0, "")
	set.Uint64("seed", 961748941, "")
	set.Float64("clamp", 100, "")
	set.Bool("noparallel", false, "")
	set.Float64("exposure", 0, "")
	set.Bool("filmic", false, "")
	set.String("out", out, "")
	return set
}

func TestRender_WritesPNG(t *testing.T) {
	captureLog(t)

	out := filepath.Join(t.TempDir(), "frame.png")
	if err := Render(cli.NewContext(nil, renderFlagSet(out), nil)); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}

	img, err := loadPNG(out)
	if err != nil {
		t.Fatalf("Expected output png, got %v", err)
	}
	if img.Width != 16 {
		t.Errorf("Expected width 16, got %d", img.Width)
	}
}

func TestRender_UnknownScene(t *testing.T) {
	captureLog(t)

	set := renderFlagSet("")
	if err := set.Set("scene", "no-such-scene"); err != nil {
		t.Fatal(err)
	}
	if err := Render(cli.NewContext(nil, set, nil)); err == nil {
		t.Error("Expected error for unknown scene, got none")
	}
}

func TestGrade_WritesDefaultPath(t *testing.T) {
	captureLog(t)

	in := filepath.Join(t.TempDir(), "input.png")
	img := color.NewImage(8, 8)
	for i := range img.Pixels {
		img.Pixels[i] = geom.Vec4{0.5, 0.25, 0.125, 1}
	}
	if err := savePNG(in, img.RGBA()); err != nil {
		t.Fatal(err)
	}

	set := flag.NewFlagSet("test", 0)
	set.Float64("exposure", 1, "")
	set.Bool("filmic", false, "")
	set.Bool("no-srgb", false, "")
	set.String("tint", "1,0.8,0.6", "")
	set.Float64("saturation", 0.5, "")
	set.Float64("contrast", 0.5, "")
	set.Float64("vignette", 0, "")
	set.Float64("grain", 0, "")
	set.Int("mosaic", 0, "")
	set.Int("grid", 0, "")
	set.Bool("sepia", false, "")
	set.String("out", "", "")
	if err := set.Parse([]string{in}); err != nil {
		t.Fatal(err)
	}

	if err := Grade(cli.NewContext(nil, set, nil)); err != nil {
		t.Fatalf("Expected grade to succeed, got %v", err)
	}
	if _, err := os.Stat(gradedPath(in)); err != nil {
		t.Errorf("Expected graded output next to input, got %v", err)
	}
}

func TestGrade_MissingArgument(t *testing.T) {
	captureLog(t)

	set := flag.NewFlagSet("test", 0)
	if err := Grade(cli.NewContext(nil, set, nil)); err == nil {
		t.Error("Expected error for missing argument, got none")
	}
}

func simulateFlagSet(out string, render bool) *flag.FlagSet {
	set := flag.NewFlagSet("test", 0)
	set.String("scene", "cloth", "")
	set.String("solver", "mass-spring", "")
	set.Int("frames", 1, "")
	set.Int("substeps", 5, "")
	set.Int("iterations", 5, "")
	set.String("wind", "", "")
	set.Uint64("seed", 987121, "")
	set.Bool("render", render, "")
	set.Int("resolution", 16, "")
	set.Int("samples", 1, "")
	set.String("out", out, "")
	return set
}

func TestSimulate_RendersFinalFrame(t *testing.T) {
	captureLog(t)

	out := filepath.Join(t.TempDir(), "final.png")
	if err := Simulate(cli.NewContext(nil, simulateFlagSet(out, true), nil)); err != nil {
		t.Fatalf("Expected simulate to succeed, got %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected rendered frame at %s, got %v", out, err)
	}
}

func TestSimulate_UnknownSolver(t *testing.T) {
	captureLog(t)

	set := simulateFlagSet("", false)
	if err := set.Set("solver", "verlet"); err != nil {
		t.Fatal(err)
	}
	if err := Simulate(cli.NewContext(nil, set, nil)); err == nil {
		t.Error("Expected error for unknown solver, got none")
	}
}
