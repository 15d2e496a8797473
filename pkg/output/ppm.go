// Package output converts and ships finished renders: it decodes the
// renderer's P3 images, writes downscaled PNG previews and publishes files
// to S3-compatible storage.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidPPM is returned for input that is not a well-formed P3 image
var ErrInvalidPPM = errors.New("invalid PPM")

// maxPixels bounds the allocation for untrusted headers
const maxPixels = 1 << 28

// ReadPPM decodes a plain-text (P3) PPM image. Comments starting with '#'
// are skipped; samples are rescaled from maxval to 8 bits.
func ReadPPM(r io.Reader) (*image.RGBA, error) {
	scanner := bufio.NewScanner(r)
	var tokens []string

	// next returns the next whitespace-separated token outside comments
	next := func() (string, error) {
		for len(tokens) == 0 {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return "", err
				}
				return "", fmt.Errorf("%w: unexpected end of data", ErrInvalidPPM)
			}
			line := scanner.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			tokens = strings.Fields(line)
		}
		token := tokens[0]
		tokens = tokens[1:]
		return token, nil
	}

	nextInt := func(what string) (int, error) {
		word, err := next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(word)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: bad %s %q", ErrInvalidPPM, what, word)
		}
		return n, nil
	}

	magic, err := next()
	if err != nil {
		return nil, err
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: unsupported magic %q", ErrInvalidPPM, magic)
	}

	width, err := nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := nextInt("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := nextInt("maxval")
	if err != nil {
		return nil, err
	}
	if maxVal == 0 || maxVal > 65535 {
		return nil, fmt.Errorf("%w: maxval %d out of range", ErrInvalidPPM, maxVal)
	}

	if width > maxPixels || (width > 0 && height > maxPixels/width) {
		return nil, fmt.Errorf("%w: %dx%d image too large", ErrInvalidPPM, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for c := range rgb {
				v, err := nextInt("sample")
				if err != nil {
					return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
				}
				if v > maxVal {
					return nil, fmt.Errorf("%w: sample %d exceeds maxval %d", ErrInvalidPPM, v, maxVal)
				}
				rgb[c] = uint8(v * 255 / maxVal)
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}

	return img, nil
}

// ReadPPMFile decodes the P3 image at path
func ReadPPMFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, err := ReadPPM(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
