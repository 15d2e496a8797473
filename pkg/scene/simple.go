package scene

import (
	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/material"
	"github.com/df07/go-kdtree-raytracer/pkg/renderer"
)

// NewSingleSphereScene creates a unit sphere at the origin viewed head-on from (0,0,3)
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.Center = core.NewVec3(0, 0, 3)
	defaultCameraConfig.LookAt = core.NewVec3(0, 0, 0)
	defaultCameraConfig.Width = 101
	defaultCameraConfig.FocusDistance = 3

	s := newScene(defaultCameraConfig, renderer.DefaultSamplingConfig(), cameraOverrides)
	s.AddSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}

// NewGlassScene creates three spheres on a ground sphere: a hollow glass
// bubble, a diffuse center sphere and a fuzzy metal sphere
func NewGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		DefocusAngle:  10.0,
		FocusDistance: 3.4,
	}

	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}

	s := newScene(defaultCameraConfig, samplingConfig, cameraOverrides)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	// Air inside glass: the inverse index turns the inner sphere into a bubble
	bubble := material.NewDielectric(1.0 / 1.5)
	metal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, center)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.4, bubble)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metal)

	return s
}
