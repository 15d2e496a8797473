package renderer

import (
	"math"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/geometry"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// shadowAcneEpsilon drops hits right at the ray origin caused by rounding
const shadowAcneEpsilon = 0.001

var (
	black   = core.NewVec3(0, 0, 0)
	white   = core.NewVec3(1, 1, 1)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// Raytracer evaluates pixel colors against an immutable world.
// It holds no mutable state and may be shared by all render workers.
type Raytracer struct {
	world             geometry.Surface
	camera            *Camera
	config            SamplingConfig
	pixelSamplesScale float64
	logger            core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(world geometry.Surface, camera *Camera, config SamplingConfig, logger core.Logger) *Raytracer {
	// At least one sample, or the pixel mean divides by zero
	config.SamplesPerPixel = max(1, config.SamplesPerPixel)
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		world:             world,
		camera:            camera,
		config:            config,
		pixelSamplesScale: 1.0 / float64(config.SamplesPerPixel),
		logger:            logger,
	}
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// SamplingConfig returns the effective sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// SamplePixel returns the Monte Carlo mean color of pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		colorAccum = colorAccum.Add(rt.RayColor(ray, sampler))
	}
	return colorAccum.Multiply(rt.pixelSamplesScale)
}

// RayColor follows a light path for at most MaxDepth bounces, multiplying
// attenuations along the way. Exhausting the depth or being absorbed yields
// black; escaping yields the sky gradient.
func (rt *Raytracer) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	throughput := white
	rayT := core.NewInterval(shadowAcneEpsilon, math.Inf(1))

	for depth := rt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(ray, rayT)
		if !isHit {
			return throughput.MultiplyVec(backgroundGradient(ray))
		}
		if hit.Material == nil {
			return black
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return black
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return black
}

// backgroundGradient blends white to light blue by the ray's normalized Y
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return white.Lerp(skyBlue, a)
}
