package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// Downscale resizes img to width pixels wide, keeping the aspect ratio.
// Images already narrower than width, or a width <= 0, are returned unchanged.
func Downscale(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Bilinear)
}

// WritePreview encodes a downscaled PNG of img to w
func WritePreview(w io.Writer, img image.Image, width int) error {
	if err := png.Encode(w, Downscale(img, width)); err != nil {
		return fmt.Errorf("failed to encode PNG preview: %w", err)
	}
	return nil
}

// SavePreview writes a downscaled PNG of img to path, creating parent directories
func SavePreview(path string, img image.Image, width int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}

	if err := WritePreview(f, img, width); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
