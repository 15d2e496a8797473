package renderer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
)

// intensity keeps quantized channels inside [0, 255]
var intensity = core.NewInterval(0.000, 0.999)

// WritePPMHeader writes the plain-text P3 header
func WritePPMHeader(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", width, height)
	return err
}

// PixelEncoder turns linear colors into PPM "R G B" lines
type PixelEncoder struct {
	Gamma float64 // 0 or 1 leaves values linear
}

// AppendColor appends the quantized color and a newline to dst
func (e PixelEncoder) AppendColor(dst []byte, color core.Vec3) []byte {
	if e.Gamma > 0 {
		color = color.GammaCorrect(e.Gamma)
	}

	dst = strconv.AppendInt(dst, int64(quantize(color.X)), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(quantize(color.Y)), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(quantize(color.Z)), 10)
	return append(dst, '\n')
}

// quantize maps [0,1) to a byte; NaN maps to 0
func quantize(c float64) int {
	if c != c {
		return 0
	}
	return int(256 * intensity.Clamp(c))
}
