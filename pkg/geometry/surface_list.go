package geometry

import (
	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/material"
)

// SurfaceList is an unaccelerated collection of surfaces queried by linear scan
type SurfaceList struct {
	Surfaces []Surface
}

// NewSurfaceList creates a list over the given surfaces
func NewSurfaceList(surfaces ...Surface) *SurfaceList {
	return &SurfaceList{Surfaces: surfaces}
}

// Add appends a surface to the list
func (l *SurfaceList) Add(surface Surface) {
	l.Surfaces = append(l.Surfaces, surface)
}

// Hit returns the closest hit across all surfaces
func (l *SurfaceList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return hitClosest(l.Surfaces, ray, rayT)
}

// BoundingBox returns the union of all member boxes
func (l *SurfaceList) BoundingBox() (core.AABB, bool) {
	return unionBoundingBox(l.Surfaces)
}

// hitClosest scans surfaces, narrowing the upper bound to each accepted hit
func hitClosest(surfaces []Surface, ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, surface := range surfaces {
		if hit, isHit := surface.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// unionBoundingBox bounds every surface that reports a box. Surfaces without
// one are skipped.
func unionBoundingBox(surfaces []Surface) (core.AABB, bool) {
	box := core.EmptyAABB()
	found := false
	for _, surface := range surfaces {
		if b, ok := surface.BoundingBox(); ok {
			box = box.Union(b)
			found = true
		}
	}
	return box, found
}
