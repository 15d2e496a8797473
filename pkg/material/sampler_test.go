package material

import "github.com/df07/go-kdtree-raytracer/pkg/core"

// constantSampler returns the same value for every draw
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }

func (s constantSampler) Get2D() core.Vec2 { return core.NewVec2(s.value, s.value) }

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
