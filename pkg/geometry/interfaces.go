package geometry

import (
	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/material"
)

// Surface is anything a ray can intersect. Sphere is the only primitive;
// KDNode and SurfaceList compose other surfaces.
type Surface interface {
	// Hit returns the nearest intersection with t strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	// BoundingBox returns false when the surface has no finite bounds
	BoundingBox() (core.AABB, bool)
}
