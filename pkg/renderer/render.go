package renderer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
)

// RenderConfig controls the parallel scanline render
type RenderConfig struct {
	NumWorkers int     // Number of workers (0 = number of logical CPUs)
	Seed       int64   // Worker w draws from a generator seeded with Seed+w
	Gamma      float64 // Output gamma (0 or 1 = linear, as the classic PPM writer)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		Seed:       42,
		Gamma:      1.0,
	}
}

// Render writes the image as a P3 PPM to out. Rows are split into contiguous
// ranges rendered concurrently; output is always row-major. For a fixed
// NumWorkers and Seed the output is byte-identical across runs.
func (rt *Raytracer) Render(out io.Writer, config RenderConfig) (RenderStats, error) {
	start := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	numWorkers := resolveWorkers(config.NumWorkers, height)

	stats := RenderStats{
		Width:        width,
		Height:       height,
		TotalPixels:  width * height,
		TotalSamples: width * height * rt.config.SamplesPerPixel,
		Workers:      numWorkers,
	}

	if err := WritePPMHeader(out, width, height); err != nil {
		return stats, fmt.Errorf("failed to write PPM header: %w", err)
	}

	rt.logger.Printf("Rendering %dx%d with %d workers, %d samples per pixel\n",
		width, height, numWorkers, rt.config.SamplesPerPixel)

	sink := newScanlineSink(out, height, rt.logger)
	encoder := PixelEncoder{Gamma: config.Gamma}

	var wg sync.WaitGroup
	for id, rows := range partitionRows(height, numWorkers) {
		worker := &Worker{
			ID:        id,
			raytracer: rt,
			rows:      rows,
			sampler:   core.NewSeededSampler(config.Seed + int64(id)),
			encoder:   encoder,
			sink:      sink,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.run()
		}()
	}
	wg.Wait()

	rt.logger.Printf("\rDone.                 \n")
	stats.Duration = time.Since(start)

	if err := sink.Err(); err != nil {
		return stats, fmt.Errorf("render output failed: %w", err)
	}
	return stats, nil
}
