package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to a stream (usually stderr)
type DefaultLogger struct {
	out io.Writer
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger(out io.Writer) core.Logger {
	return &DefaultLogger{out: out}
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}
