package mld

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Bounds is an axis-aligned rectangle in file units
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Intersects reports whether b and other overlap, edges included
func (b Bounds) Intersects(other Bounds) bool {
	return b.MinX <= other.MaxX && other.MinX <= b.MaxX &&
		b.MinY <= other.MaxY && other.MinY <= b.MaxY
}

// Union returns the smallest bounds containing both
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// rect converts the bounds to an R-tree rectangle. Degenerate extents are
// widened so points and axis-parallel lines can still be indexed.
func (b Bounds) rect() rtreego.Rect {
	point := rtreego.Point{b.MinX, b.MinY}

	const epsilon = 1e-9
	lengths := []float64{
		math.Max(b.MaxX-b.MinX, epsilon),
		math.Max(b.MaxY-b.MinY, epsilon),
	}

	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// ObjectBounds returns the bounds of an object's outline. ok is false when
// the outline is empty or has a non-finite coordinate.
func ObjectBounds(o *Object) (b Bounds, ok bool) {
	if len(o.Vertices) == 0 {
		return Bounds{}, false
	}
	b = Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, v := range o.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return Bounds{}, false
		}
		b.MinX = math.Min(b.MinX, v.X)
		b.MinY = math.Min(b.MinY, v.Y)
		b.MaxX = math.Max(b.MaxX, v.X)
		b.MaxY = math.Max(b.MaxY, v.Y)
	}
	return b, true
}

// spatialIndex provides fast spatial queries over a layer's objects
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedObject wraps an object for the R-tree
type indexedObject struct {
	index  int // position in the layer
	bounds Bounds
}

// Bounds implements rtreego.Spatial
func (o *indexedObject) Bounds() rtreego.Rect {
	return o.bounds.rect()
}

func (l *Layer) buildSpatialIndex() {
	if len(l.objects) == 0 {
		return
	}

	// 2D, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)

	var layerBounds *Bounds
	for i := range l.objects {
		ob, ok := ObjectBounds(&l.objects[i])
		if !ok {
			// non-finite outlines cannot be placed in the tree
			continue
		}
		rtree.Insert(&indexedObject{index: i, bounds: ob})

		if layerBounds == nil {
			layerBounds = &ob
		} else {
			u := layerBounds.Union(ob)
			layerBounds = &u
		}
	}

	l.spatialIndex = &spatialIndex{rtree: rtree}
	if layerBounds != nil {
		l.bounds = *layerBounds
	}
}

// ObjectsInBounds returns the objects whose bounds intersect the given
// bounds, in file order. Objects without finite bounds are never returned.
func (l *Layer) ObjectsInBounds(bounds Bounds) []Object {
	if l.spatialIndex == nil || l.spatialIndex.rtree == nil {
		return l.objectsInBoundsLinear(bounds)
	}

	spatials := l.spatialIndex.rtree.SearchIntersect(bounds.rect())

	indices := make([]int, 0, len(spatials))
	for _, spatial := range spatials {
		indexed := spatial.(*indexedObject)
		// the rectangle was widened for the tree; check the real bounds
		if indexed.bounds.Intersects(bounds) {
			indices = append(indices, indexed.index)
		}
	}
	sort.Ints(indices)

	result := make([]Object, len(indices))
	for i, idx := range indices {
		result[i] = l.objects[idx]
	}
	return result
}

func (l *Layer) objectsInBoundsLinear(bounds Bounds) []Object {
	var result []Object
	for i := range l.objects {
		ob, ok := ObjectBounds(&l.objects[i])
		if ok && bounds.Intersects(ob) {
			result = append(result, l.objects[i])
		}
	}
	return result
}
