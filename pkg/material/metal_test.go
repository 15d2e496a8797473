package material

import (
	"testing"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Unit incident (0, -1, -1)/√2 reflects to (0, -1, 1)/√2
	expected := core.NewVec3(0, -1, 1).Normalize()
	if !vecClose(scatter.Scattered.Direction, expected, 1e-12) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	mirror := core.NewVec3(0, 0, 1)
	varied := false
	for i := 0; i < 20; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		// Head-on with fuzz 0.5 always stays above the surface
		if !didScatter {
			t.Fatal("Expected head-on fuzzy reflection to scatter")
		}
		offset := scatter.Scattered.Direction.Subtract(mirror).Length()
		if offset > 0.5+1e-9 {
			t.Errorf("Fuzz perturbation %f exceeds fuzz radius", offset)
		}
		if offset > 1e-6 {
			varied = true
		}
	}
	if !varied {
		t.Error("Expected fuzz to perturb the reflected direction")
	}
}

func TestMetal_AbsorbsRaysBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)

	// Grazing ray reflects to (1, 0, ~0); a perturbation of (0, 0, -1) pushes it under
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.001), core.NewVec3(1, 0, -0.001))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	sampler := fixedPairSampler{pair: core.NewVec2(1, 0.5)}
	if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
		t.Error("Expected reflection pushed below the surface to be absorbed")
	}
}
