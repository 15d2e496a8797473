package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
)

// constantSampler returns the same value for every draw
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }

func (s constantSampler) Get2D() core.Vec2 { return core.NewVec2(s.value, s.value) }

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestNewCamera_ImageHeight(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		aspect   float64
		expected int
	}{
		{"square", 100, 1.0, 100},
		{"widescreen", 400, 16.0 / 9.0, 225},
		{"truncates", 1200, 16.0 / 9.0, 675},
		{"clamped to one", 1, 16.0 / 9.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.Width = tt.width
			config.AspectRatio = tt.aspect
			camera := NewCamera(config)
			if camera.Height() != tt.expected {
				t.Errorf("Expected height %d, got %d", tt.expected, camera.Height())
			}
		})
	}
}

func TestNewCamera_Basis(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	camera := NewCamera(config)

	for name, v := range map[string]core.Vec3{"u": camera.u, "v": camera.v, "w": camera.w} {
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("Basis vector %s should be unit length, got %f", name, v.Length())
		}
	}
	if math.Abs(camera.u.Dot(camera.v)) > 1e-9 || math.Abs(camera.u.Dot(camera.w)) > 1e-9 || math.Abs(camera.v.Dot(camera.w)) > 1e-9 {
		t.Error("Basis vectors should be mutually orthogonal")
	}

	expectedForward := config.LookAt.Subtract(config.Center).Normalize()
	if !vecClose(camera.GetCameraForward(), expectedForward, 1e-9) {
		t.Errorf("Expected forward %v, got %v", expectedForward, camera.GetCameraForward())
	}
}

func TestCamera_GetRay_CenterPixel(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width = 101
	camera := NewCamera(config)

	// A 0.5 draw cancels the jitter so the ray passes through the pixel center
	ray := camera.GetRay(50, 50, constantSampler{0.5})

	if !vecClose(ray.Origin, config.Center, 1e-12) {
		t.Errorf("Expected origin at camera center, got %v", ray.Origin)
	}
	if !vecClose(ray.Direction, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected direction (0,0,-1), got %v", ray.Direction)
	}
}

func TestCamera_GetRay_Corners(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width = 2
	camera := NewCamera(config)
	sampler := constantSampler{0.5}

	topLeft := camera.GetRay(0, 0, sampler).Direction
	bottomRight := camera.GetRay(1, 1, sampler).Direction

	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("Pixel (0,0) should point up and left, got %v", topLeft)
	}
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("Pixel (1,1) should point down and right, got %v", bottomRight)
	}
	if math.Abs(topLeft.Length()-1) > 1e-9 {
		t.Errorf("Ray direction should be normalized, got length %f", topLeft.Length())
	}
}

func TestCamera_GetRay_DefocusDisk(t *testing.T) {
	config := DefaultCameraConfig()
	config.DefocusAngle = 10
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(7)

	radius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	moved := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(50, 50, sampler)
		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > radius+1e-9 {
			t.Fatalf("Ray origin %v outside defocus disk of radius %f", ray.Origin, radius)
		}
		if math.Abs(offset.Dot(camera.w)) > 1e-9 {
			t.Fatalf("Ray origin %v should lie in the lens plane", ray.Origin)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected defocus to move ray origins off the camera center")
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{Width: 400, VFov: 20})

	if merged.Width != 400 || merged.VFov != 20 {
		t.Errorf("Override fields not applied: %+v", merged)
	}
	if merged.AspectRatio != base.AspectRatio || merged.FocusDistance != base.FocusDistance {
		t.Errorf("Zero override fields should keep base values: %+v", merged)
	}
	if !merged.Up.Equals(base.Up) {
		t.Errorf("Expected up %v, got %v", base.Up, merged.Up)
	}
}
