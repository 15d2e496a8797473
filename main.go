package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-kdtree-raytracer/pkg/config"
	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/geometry"
	"github.com/df07/go-kdtree-raytracer/pkg/output"
	"github.com/df07/go-kdtree-raytracer/pkg/renderer"
	"github.com/df07/go-kdtree-raytracer/pkg/scene"
	"github.com/spf13/cobra"
)

// renderOptions holds the flags of the render command
type renderOptions struct {
	scene        string
	width        int
	samples      int
	depth        int
	workers      int
	seed         int64
	gamma        float64
	leafSize     int
	gridSize     int
	bruteForce   bool
	output       string
	preview      string
	previewWidth int
	publish      bool
	envFile      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "raytracer",
		Short:        "K-d tree accelerated Monte Carlo sphere raytracer",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newScenesCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	defaults := renderer.DefaultRenderConfig()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PPM image",
		Long: "Render a built-in scene to a plain-text PPM image.\n" +
			"Output is saved to output/<scene>/render_<timestamp>.ppm unless --output is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, cmd.OutOrStdout(), renderer.NewDefaultLogger(cmd.ErrOrStderr()))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.scene, "scene", "weekend", "Scene to render (see 'raytracer scenes')")
	flags.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flags.IntVar(&opts.workers, "workers", defaults.NumWorkers, "Number of render workers (0 = number of CPUs)")
	flags.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed for scene generation and sampling")
	flags.Float64Var(&opts.gamma, "gamma", defaults.Gamma, "Output gamma (1 = linear)")
	flags.IntVar(&opts.leafSize, "leaf-size", geometry.DefaultMaxLeafSize, "Maximum surfaces per k-d tree leaf")
	flags.IntVar(&opts.gridSize, "grid-size", 0, "Grid size for the sphere-grid scene (0 = scene default)")
	flags.BoolVar(&opts.bruteForce, "brute-force", false, "Test every surface instead of using the k-d tree")
	flags.StringVarP(&opts.output, "output", "o", "", "Output PPM path ('-' for stdout)")
	flags.StringVar(&opts.preview, "preview", "", "Also write a PNG preview to this path")
	flags.IntVar(&opts.previewWidth, "preview-width", 400, "Preview width in pixels (0 = full size)")
	flags.BoolVar(&opts.publish, "publish", false, "Upload the render (and preview) to S3")
	flags.StringVar(&opts.envFile, "env-file", "", "Env file with S3 settings (default .env if present)")

	return cmd
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the available scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range scene.ListScenes() {
				fmt.Fprintf(out, "  %-12s %s - %s\n", info.ID, info.Name, info.Description)
			}
			return nil
		},
	}
}

// createScene builds the requested scene with command line overrides applied
func createScene(opts renderOptions) (*scene.Scene, error) {
	s, err := scene.NewScene(opts.scene, scene.Options{
		Seed:     opts.seed,
		GridSize: opts.gridSize,
		Camera:   renderer.CameraConfig{Width: opts.width},
	})
	if err != nil {
		return nil, err
	}

	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	return s, nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.ppm
func createOutputPath(sceneID string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.ppm", timestamp))
}

func runRender(ctx context.Context, opts renderOptions, stdout io.Writer, logger core.Logger) error {
	toStdout := opts.output == "-"
	if toStdout && (opts.preview != "" || opts.publish) {
		return errors.New("--preview and --publish need a file output, not stdout")
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene with %d surfaces\n", opts.scene, selectedScene.GetPrimitiveCount())

	buildStart := time.Now()
	world := selectedScene.BuildWorld(opts.leafSize, opts.bruteForce)
	if tree, ok := world.(*geometry.KDNode); ok {
		stats := tree.Stats()
		logger.Printf("Built k-d tree in %v: %d nodes, %d leaves, max depth %d, avg leaf depth %.1f\n",
			time.Since(buildStart), stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgLeafDepth)
	} else {
		logger.Printf("Using brute-force surface list\n")
	}

	raytracer := renderer.NewRaytracer(world, selectedScene.NewCamera(), selectedScene.SamplingConfig, logger)
	renderConfig := renderer.RenderConfig{
		NumWorkers: opts.workers,
		Seed:       opts.seed,
		Gamma:      opts.gamma,
	}

	if toStdout {
		_, err := renderTo(stdout, raytracer, renderConfig, logger)
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = createOutputPath(opts.scene, time.Now())
	}
	if err := renderToFile(outputPath, raytracer, renderConfig, logger); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outputPath)

	if opts.preview != "" {
		img, err := output.ReadPPMFile(outputPath)
		if err != nil {
			return err
		}
		if err := output.SavePreview(opts.preview, img, opts.previewWidth); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", opts.preview)
	}

	if opts.publish {
		return publish(ctx, opts, outputPath, logger)
	}
	return nil
}

func renderTo(w io.Writer, raytracer *renderer.Raytracer, config renderer.RenderConfig, logger core.Logger) (renderer.RenderStats, error) {
	buffered := bufio.NewWriter(w)
	stats, err := raytracer.Render(buffered, config)
	if err != nil {
		return stats, err
	}
	if err := buffered.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Printf("Render completed in %v: %d pixels, %d samples, %d workers (%.0f samples/s)\n",
		stats.Duration, stats.TotalPixels, stats.TotalSamples, stats.Workers, stats.SamplesPerSecond())
	return stats, nil
}

func renderToFile(path string, raytracer *renderer.Raytracer, config renderer.RenderConfig, logger core.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := renderTo(file, raytracer, config, logger); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// publish uploads the render and preview as <prefix>/<scene>/<file>
func publish(ctx context.Context, opts renderOptions, outputPath string, logger core.Logger) error {
	if err := config.LoadEnv(opts.envFile); err != nil {
		return err
	}

	publisher, err := output.NewS3Publisher(config.S3FromEnv(), logger)
	if err != nil {
		return err
	}

	files := []string{outputPath}
	if opts.preview != "" {
		files = append(files, opts.preview)
	}
	for _, path := range files {
		name := strings.Join([]string{opts.scene, filepath.Base(path)}, "/")
		if err := publisher.PublishFile(ctx, path, name); err != nil {
			return err
		}
	}
	return nil
}
