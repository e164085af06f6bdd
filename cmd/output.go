package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/ChiaraGiaca/cg-projects/pkg/color"
)

// savePNG writes img to path, creating parent directories as needed.
func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

// loadPNG decodes a PNG into linear float pixels, inverting the sRGB
// transfer curve.
func loadPNG(path string) (*color.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return color.FromImage(img), nil
}

// defaultOutputPath returns a timestamped path under output/<name>/.
func defaultOutputPath(name, prefix string) string {
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("%s_%s.png", prefix, timestamp))
}
