package scene

import (
	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/geometry"
	"github.com/df07/go-kdtree-raytracer/pkg/material"
	"github.com/df07/go-kdtree-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Surfaces       []geometry.Surface // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// newScene applies the first camera override, if any, on top of the scene's defaults
func newScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		Surfaces:       make([]geometry.Surface, 0),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Surfaces = append(s.Surfaces, geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the total number of surfaces in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Surfaces)
}

// NewCamera builds the camera described by the scene's camera config
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// BuildWorld returns the surface the renderer queries: a k-d tree over the
// scene, or a plain linear list when bruteForce is set
func (s *Scene) BuildWorld(maxLeafSize int, bruteForce bool) geometry.Surface {
	if bruteForce {
		return geometry.NewSurfaceList(s.Surfaces...)
	}
	return geometry.NewKDTree(s.Surfaces, maxLeafSize)
}
