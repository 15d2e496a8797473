package renderer

import (
	"fmt"
	"io"
	"sync"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/shirou/gopsutil/v3/cpu"
)

// fallbackWorkers is used when the hardware concurrency cannot be detected
const fallbackWorkers = 4

// DetectWorkers reports the number of logical CPUs, or fallbackWorkers when unknown
func DetectWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return fallbackWorkers
	}
	return count
}

// resolveWorkers picks the worker count for an image with the given number of rows
func resolveWorkers(requested, rows int) int {
	n := requested
	if n <= 0 {
		n = DetectWorkers()
	}
	if n > rows {
		n = rows
	}
	return max(1, n)
}

// rowRange is a half-open range of scanlines [start, end)
type rowRange struct {
	start, end int
}

// partitionRows splits [0, height) into contiguous ranges, one per worker.
// The first height%workers ranges get one extra row.
func partitionRows(height, workers int) []rowRange {
	ranges := make([]rowRange, 0, workers)
	base, extra := height/workers, height%workers
	start := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < extra {
			size++
		}
		ranges = append(ranges, rowRange{start: start, end: start + size})
		start += size
	}
	return ranges
}

// scanlineSink receives finished rows in any order and writes them to the
// output stream in row-major order. With contiguous row ranges, rows from
// later workers wait here until the first worker finishes, so the sink can
// hold nearly the whole encoded image.
type scanlineSink struct {
	mu        sync.Mutex
	out       io.Writer
	rows      [][]byte // Completed rows waiting for their predecessors
	next      int      // Flush cursor: first row not yet written
	remaining int
	err       error // First write error; later writes are skipped
	logger    core.Logger
}

func newScanlineSink(out io.Writer, height int, logger core.Logger) *scanlineSink {
	return &scanlineSink{
		out:       out,
		rows:      make([][]byte, height),
		remaining: height,
		logger:    logger,
	}
}

// commit stores a finished row and flushes every contiguous completed row
func (s *scanlineSink) commit(row int, line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[row] = line
	for s.next < len(s.rows) && s.rows[s.next] != nil {
		if s.err == nil {
			if _, err := s.out.Write(s.rows[s.next]); err != nil {
				s.err = fmt.Errorf("failed to write scanline %d: %w", s.next, err)
			}
		}
		s.rows[s.next] = nil
		s.next++
	}

	s.remaining--
	s.logger.Printf("\rScanlines remaining: %d ", s.remaining)
}

// Err returns the first write error, if any
func (s *scanlineSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Worker renders a fixed range of scanlines with its own sampler
type Worker struct {
	ID        int
	raytracer *Raytracer
	rows      rowRange
	sampler   core.Sampler
	encoder   PixelEncoder
	sink      *scanlineSink
}

// run renders every row in the worker's range and commits it to the sink
func (w *Worker) run() {
	width := w.raytracer.camera.Width()
	for j := w.rows.start; j < w.rows.end; j++ {
		// Each row gets its own buffer; the sink may hold it until earlier rows finish
		line := make([]byte, 0, width*12)
		for i := 0; i < width; i++ {
			line = w.encoder.AppendColor(line, w.raytracer.SamplePixel(i, j, w.sampler))
		}
		w.sink.commit(j, line)
	}
}
