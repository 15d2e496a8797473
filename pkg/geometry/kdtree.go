package geometry

import (
	"sort"

	"github.com/df07/go-kdtree-raytracer/pkg/core"
	"github.com/df07/go-kdtree-raytracer/pkg/material"
)

// DefaultMaxLeafSize is the leaf threshold used when none is given
const DefaultMaxLeafSize = 4

// KDNode is a node of a median-split k-d tree over surfaces. A node is either
// a leaf (Surfaces set, no children) or internal (both children, no Surfaces).
// The tree is immutable after construction and safe for concurrent queries.
type KDNode struct {
	Box      core.AABB // Union of everything below this node
	Axis     int       // Split axis for internal nodes (0=X, 1=Y, 2=Z)
	Left     *KDNode
	Right    *KDNode
	Surfaces []Surface // Leaf contents (nil for internal nodes)
}

// NewKDTree builds a k-d tree over surfaces. Leaves hold at most maxLeafSize
// surfaces; values <= 0 select DefaultMaxLeafSize.
func NewKDTree(surfaces []Surface, maxLeafSize int) *KDNode {
	if maxLeafSize <= 0 {
		maxLeafSize = DefaultMaxLeafSize
	}

	// Copy so the caller's slice is never reordered
	surfacesCopy := make([]Surface, len(surfaces))
	copy(surfacesCopy, surfaces)

	return buildKDNode(surfacesCopy, 0, maxLeafSize)
}

// buildKDNode recursively splits at the median along axis depth%3
func buildKDNode(surfaces []Surface, depth, maxLeafSize int) *KDNode {
	box, _ := unionBoundingBox(surfaces)

	if len(surfaces) <= maxLeafSize {
		return &KDNode{
			Box:      box,
			Surfaces: surfaces,
		}
	}

	axis := depth % 3
	sortSurfacesByAxis(surfaces, axis)

	// Left gets the smaller half for odd counts
	mid := len(surfaces) / 2

	return &KDNode{
		Box:   box,
		Axis:  axis,
		Left:  buildKDNode(surfaces[:mid], depth+1, maxLeafSize),
		Right: buildKDNode(surfaces[mid:], depth+1, maxLeafSize),
	}
}

// sortSurfacesByAxis stable-sorts surfaces by their bounding box midpoint.
// Surfaces without a box sort as if centered at the origin.
func sortSurfacesByAxis(surfaces []Surface, axis int) {
	type keyed struct {
		surface Surface
		key     float64
	}

	items := make([]keyed, len(surfaces))
	for i, surface := range surfaces {
		items[i].surface = surface
		if box, ok := surface.BoundingBox(); ok {
			items[i].key = box.Midpoint(axis)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})

	for i := range items {
		surfaces[i] = items[i].surface
	}
}

// IsLeaf reports whether this node stores surfaces directly
func (n *KDNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Hit returns the nearest intersection in the subtree.
//
// Children are visited near-first along the split axis and the far child is
// queried with the interval narrowed to the near hit, so a far subtree whose
// box starts beyond that hit is pruned by its box test.
func (n *KDNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, rayT) {
		return nil, false
	}

	if n.IsLeaf() {
		return hitClosest(n.Surfaces, ray, rayT)
	}

	near, far := n.Left, n.Right
	if ray.Direction.Axis(n.Axis) < 0 {
		near, far = far, near
	}

	closestHit, hitAnything := near.Hit(ray, rayT)
	if hitAnything {
		rayT = rayT.WithMax(closestHit.T)
	}

	if hit, isHit := far.Hit(ray, rayT); isHit {
		return hit, true
	}

	return closestHit, hitAnything
}

// BoundingBox returns the node's precomputed box
func (n *KDNode) BoundingBox() (core.AABB, bool) {
	return n.Box, n.Box.IsValid()
}

// KDStats describes the shape of a built tree
type KDStats struct {
	TotalNodes    int
	LeafNodes     int
	MaxDepth      int
	AvgLeafDepth  float64
	TotalSurfaces int
}

// Stats walks the tree and collects structural statistics
func (n *KDNode) Stats() KDStats {
	stats := KDStats{}
	n.collectStats(0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgLeafDepth = stats.AvgLeafDepth / float64(stats.LeafNodes)
	}

	return stats
}

func (n *KDNode) collectStats(depth int, stats *KDStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if n.IsLeaf() {
		stats.LeafNodes++
		stats.TotalSurfaces += len(n.Surfaces)
		stats.AvgLeafDepth += float64(depth) // summed here, averaged in Stats
		return
	}

	n.Left.collectStats(depth+1, stats)
	n.Right.collectStats(depth+1, stats)
}
