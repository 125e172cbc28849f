package shapegraph

import (
	"github.com/dhconnelly/rtreego"

	"github.com/routesan/core/internal/geo"
)

// spatialIndex is an R-tree over every explicit edge and circle in a
// ShapeRegistry, built on demand by BuildIndex. It exists to serve the
// external map-fit pass's fit_ext/map_fit_scale configuration (spec.md
// §6): given a trajectory point, find the edges within extMeters without
// a linear scan over the whole graph.
type spatialIndex struct {
	tree *rtreego.Rtree
}

// edgeSpatial adapts *Edge to rtreego.Spatial.
type edgeSpatial struct {
	edge *Edge
}

func (es edgeSpatial) Bounds() rtreego.Rect {
	b := es.edge.Bounds()
	point := rtreego.Point{b.SW.Lon, b.SW.Lat}
	lengths := []float64{
		maxLength(b.NE.Lon - b.SW.Lon),
		maxLength(b.NE.Lat - b.SW.Lat),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// circleSpatial adapts geo.Circle to rtreego.Spatial, using the circle's
// own bounding box (center +/- radius converted to degrees) so a
// zero-radius circle still occupies a point, not a degenerate rectangle
// rtreego would reject.
type circleSpatial struct {
	circle geo.Circle
}

func (cs circleSpatial) Bounds() rtreego.Rect {
	dLat := geo.MetersToDegreesLat(cs.circle.Radius)
	dLon := geo.MetersToDegreesLon(cs.circle.Radius, cs.circle.Center.Lat)
	point := rtreego.Point{cs.circle.Center.Lon - dLon, cs.circle.Center.Lat - dLat}
	lengths := []float64{maxLength(2 * dLon), maxLength(2 * dLat)}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// maxLength guards against rtreego.NewRect rejecting a zero-length side
// (a perfectly north-south or east-west edge, or a zero-radius circle).
func maxLength(v float64) float64 {
	const minSide = 1e-9
	if v < minSide {
		return minSide
	}
	return v
}

// BuildIndex constructs the spatial index over r's explicit edges and
// circles. It is safe to call once after ParseShapes has finished; the
// registry is read-only afterward, so the resulting index may be shared
// by reference across parallel workers (spec.md §5).
func (r *ShapeRegistry) BuildIndex() {
	tree := rtreego.NewTree(2, 25, 50)

	for _, e := range r.edges {
		tree.Insert(edgeSpatial{edge: e})
	}
	for _, c := range r.circles {
		tree.Insert(circleSpatial{circle: c})
	}

	r.index = &spatialIndex{tree: tree}
}

// EdgesNear returns the explicit edges whose (unpadded) bounding box
// intersects a query box centered on p that reaches extMeters from p in
// each direction. It
// returns nil if BuildIndex has not been called. This narrows candidates
// for an external map-fit pass; it does not itself compute a fit.
func (r *ShapeRegistry) EdgesNear(p geo.Point, extMeters float64) []*Edge {
	if r.index == nil {
		return nil
	}

	dLat := geo.MetersToDegreesLat(extMeters)
	dLon := geo.MetersToDegreesLon(extMeters, p.Lat)
	point := rtreego.Point{p.Lon - dLon, p.Lat - dLat}
	lengths := []float64{maxLength(2 * dLon), maxLength(2 * dLat)}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	results := r.index.tree.SearchIntersect(rect)
	edges := make([]*Edge, 0, len(results))
	for _, res := range results {
		if es, ok := res.(edgeSpatial); ok {
			edges = append(edges, es.edge)
		}
	}
	return edges
}
