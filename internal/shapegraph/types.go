// Package shapegraph loads the compact shape CSV format into a connected
// road-graph of vertices and edges, plus auxiliary circles, grids, and
// interval annotations (spec.md component A/C).
//
// Cyclic Vertex<->Edge ownership is modeled as an arena + index: the
// ShapeRegistry owns the Vertex and Edge arenas; a Vertex's incident edges
// are indices into the registry's edge arena rather than pointers, so
// traversal never outlives the registry and there is no destructor
// ordering hazard to reason about.
package shapegraph

import "github.com/routesan/core/internal/geo"

// Vertex is a Point plus a 64-bit uid and the set of edges incident on it.
// Incident edges are recorded by index into the owning ShapeRegistry's
// edge arena; dereference them with ShapeRegistry.IncidentEdges.
type Vertex struct {
	Point geo.Point
	UID   uint64

	edgeIdx []int
}

// AddEdge records edgeIdx (an index into the owning registry's edge arena)
// as incident on this vertex. Called once per endpoint during shape
// ingest, producing the adjacency lists consumed by downstream map-fit
// code.
func (v *Vertex) AddEdge(edgeIdx int) {
	v.edgeIdx = append(v.edgeIdx, edgeIdx)
}

// IncidentEdgeCount returns the number of edges incident on this vertex.
func (v *Vertex) IncidentEdgeCount() int {
	return len(v.edgeIdx)
}

// EdgeAttrs holds edge attributes parsed from the shape file's
// colon-separated key=value attribute list. WayType is the single
// recognized field; Spill carries every other key (e.g. way_id) so it can
// be round-tripped on write without the parser understanding its meaning.
type EdgeAttrs struct {
	WayType Highway
	Spill   map[string]string
}

// Highway is re-exported at the package level so callers of shapegraph
// don't need to import internal/geo directly.
type Highway = geo.Highway

// Edge is an ordered pair of Vertex references with v1.UID != v2.UID, a
// 64-bit edge uid, a Highway classification, and an explicit flag
// distinguishing mapped road edges from implicit (trajectory-derived)
// edges.
type Edge struct {
	UID      uint64
	V1       *Vertex
	V2       *Vertex
	Attrs    EdgeAttrs
	Explicit bool
}

// Bounds returns the bounding box spanning the edge's two endpoints.
func (e *Edge) Bounds() geo.Bounds {
	minLat, maxLat := e.V1.Point.Lat, e.V2.Point.Lat
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	minLon, maxLon := e.V1.Point.Lon, e.V2.Point.Lon
	if minLon > maxLon {
		minLon, maxLon = maxLon, minLon
	}
	return geo.Bounds{
		SW: geo.NewPoint(minLat, minLon),
		NE: geo.NewPoint(maxLat, maxLon),
	}
}
